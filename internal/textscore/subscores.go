package textscore

import "strings"

// Declared closed ranges for every sub-score. Oracle-supplied values are
// clamped to the same ranges as the local heuristic.
const (
	MaxFirstSentence  = 8
	MaxFreeze         = 10
	MaxSpace          = 10
	MaxLinger         = 10
	MaxBleak          = 6
	MaxDetour         = 8
	MaxMicroRecovery  = 6
	MaxRhythm         = 4
	MaxMicroParticles = 6

	MaxCompression     = 8
	MaxTurn            = 6
	MaxClutter         = 4
	MaxNarrativeRhythm = 4

	MaxLayer = 4
	MaxWorld = 3
	MaxTheme = 3

	MaxTotal = 100
)

// over-use ceiling for transition words: more than this many hits reads as
// mechanical and zeroes the turn score
const turnOveruseCeiling = 4

// Clamp bounds n to the closed interval [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// compressionScore rewards a 2-7 sentence structure and zeroes out for
// degenerate low-content text.
func compressionScore(f Features) int {
	if f.TokenCount < 5 || f.UniqueTokenRatio < 0.4 {
		return 0
	}
	switch {
	case f.SentenceCount >= 3 && f.SentenceCount <= 7:
		return 8
	case f.SentenceCount == 2 || f.SentenceCount == 8:
		return 5
	default: // single sentence or sprawling text
		return 3
	}
}

// turnScore measures a narrative turn: requires an event, builds with
// transition word use up to a cap, collapses on over-use, and rewards an
// asymmetric opening/closing sentence length.
func turnScore(f Features) int {
	if !f.HasEvent || f.TransitionHits == 0 {
		return 0
	}
	if f.TransitionHits > turnOveruseCeiling {
		return 0
	}

	s := 2
	if f.TransitionHits >= 2 {
		s += 2
	}
	if f.LengthSpread >= 15 {
		s += 2
	}
	if f.StartWordDiversity >= 2 {
		s += 2
	}
	return Clamp(s, 0, MaxTurn)
}

// clutterScore starts at the maximum and is decremented for repetition,
// filler adverbs and run-on sentences.
func clutterScore(f Features, body string) int {
	s := MaxClutter
	if f.RepeatedTokenCount >= 2 {
		s--
	}
	if containsFiller(body) {
		s--
	}
	if f.LongSentenceCount >= 2 {
		s--
	}
	return Clamp(s, 0, MaxClutter)
}

// narrativeRhythmScore rewards moderate sentence length variance and
// penalizes a single dominant sentence opener.
func narrativeRhythmScore(f Features) int {
	s := MaxNarrativeRhythm
	if f.SentenceCount >= 2 {
		if f.LengthStdDev > 40 {
			s--
		}
		if f.SentenceCount >= 3 && f.LengthStdDev < 4 {
			s--
		}
		if f.StartWordMaxRepeat >= 3 {
			s--
		}
	}
	return Clamp(s, 0, MaxNarrativeRhythm)
}

// heuristicAesthetics derives the aesthetic sub-scores from surface signals
// of the body. Used whenever the oracle is unavailable or fails.
func (s *Scorer) heuristicAesthetics(body string) aestheticScores {
	byteCount := len(body)
	newlines := strings.Count(body, "\n")
	terminal := 0
	commas := 0
	for _, r := range body {
		switch {
		case isTerminalPunct(r):
			terminal++
		case r == ',':
			commas++
		}
	}

	a := aestheticScores{
		FirstSentence:  Clamp(byteCount*5/s.cfg.MaxBytes, 1, MaxFirstSentence),
		Freeze:         Clamp(byteCount*8/s.cfg.MaxBytes, 1, MaxFreeze),
		Space:          Clamp(newlines*2, 0, MaxSpace),
		Linger:         Clamp(terminal*2, 0, MaxLinger),
		Bleak:          2,
		Detour:         3,
		MicroRecovery:  3,
		Rhythm:         Clamp(commas, 1, MaxRhythm),
		MicroParticles: 3,
	}
	if strings.Contains(body, "죽") {
		a.Bleak = 4
	}
	if strings.Contains(body, "하지만") {
		a.Detour = 6
	}
	return a
}

// heuristicCreativity returns the flat creativity defaults of the local path;
// only the oracle can differentiate these dimensions.
func heuristicCreativity() creativityScores {
	return creativityScores{Layer: 3, World: 3, Theme: 3}
}

// aestheticScores groups the nine aesthetic sub-score dimensions.
type aestheticScores struct {
	FirstSentence  int
	Freeze         int
	Space          int
	Linger         int
	Bleak          int
	Detour         int
	MicroRecovery  int
	Rhythm         int
	MicroParticles int
}

func (a aestheticScores) total() int {
	return a.FirstSentence + a.Freeze + a.Space + a.Linger + a.Bleak +
		a.Detour + a.MicroRecovery + a.Rhythm + a.MicroParticles
}

// creativityScores groups the creativity sub-score dimensions.
type creativityScores struct {
	Layer int
	World int
	Theme int
}

func (c creativityScores) total() int {
	return c.Layer + c.World + c.Theme
}
