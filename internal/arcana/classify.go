package arcana

import (
	"fmt"

	"github.com/surimlab/challenge500/internal/textscore"
)

// Archetype is one of the four coarse share-card creatures derived from an
// entry's sub-scores.
type Archetype string

const (
	Unicorn  Archetype = "unicorn"  // emotional register dominates
	Griffin  Archetype = "griffin"  // structure and rhythm dominate
	Wolf     Archetype = "wolf"     // fine emotional particles and recovery
	Basilisk Archetype = "basilisk" // aggro-to-art, layered meaning
)

// Band is the score color band used on share cards.
type Band string

const (
	BandAmber  Band = "amber"
	BandPurple Band = "purple"
	BandAqua   Band = "aqua"
)

// aggro thresholds for the basilisk short-circuit
const (
	aggroThreshold = 12
	layerThreshold = 4
)

// ClassifyArchetype maps an evaluation to its archetype. The aggro group is
// checked first; the remaining three groups compete on their aggregate, with
// ties resolved in the fixed order unicorn, griffin, wolf.
func ClassifyArchetype(e textscore.Evaluation) Archetype {
	emotionalPower := e.Freeze + e.Space + e.Linger + e.MicroParticles
	structuralPower := e.NarrativeScore + e.Rhythm + e.FirstSentence
	microEmotion := e.MicroParticles + e.MicroRecovery + e.Linger
	aggro := e.Layer + e.World + e.Theme + e.Bleak

	switch {
	case aggro >= aggroThreshold || e.Layer >= layerThreshold:
		return Basilisk
	case emotionalPower >= structuralPower && emotionalPower >= microEmotion:
		return Unicorn
	case structuralPower > emotionalPower && structuralPower >= microEmotion:
		return Griffin
	default:
		return Wolf
	}
}

// ScoreBand maps a composite total to its color band.
func ScoreBand(total int) Band {
	switch {
	case total >= 70:
		return BandAmber
	case total >= 40:
		return BandPurple
	default:
		return BandAqua
	}
}

// ShareCard is the OG share-card classification of an entry.
type ShareCard struct {
	Path     string    `json:"path"`
	Creature Archetype `json:"creature"`
	Color    Band      `json:"color"`
}

// Classify produces the share card for an evaluation.
func Classify(e textscore.Evaluation) ShareCard {
	creature := ClassifyArchetype(e)
	band := ScoreBand(e.TotalScore)
	return ShareCard{
		Path:     fmt.Sprintf("/og/500/%s-%s.png", creature, band),
		Creature: creature,
		Color:    band,
	}
}
