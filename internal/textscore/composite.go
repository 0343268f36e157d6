package textscore

// Score band tags derived from the composite total, ordered highest first.
const (
	TagElaborate = "정교한서사"
	TagPolished  = "완성도높음"
	TagStable    = "안정적실험"
	TagRough     = "거친실험"

	TagLayered   = "의미단층강함"
	TagParticles = "정서미립자"

	// SentinelTag is always appended last to every evaluation.
	SentinelTag = "수림봇"
)

// FallbackReason is the fixed explanation used when the oracle did not
// contribute to the evaluation.
const FallbackReason = "오라클 응답 없음: 휴리스틱 평가 적용."

// LoserThreshold is the display-score line below which an entry is presented
// as a "loser" result.
const LoserThreshold = 50

// Config holds the tunable scoring parameters.
type Config struct {
	MaxBytes int // configured maximum body size, anchors byte-derived scores
}

// DefaultConfig returns the standard challenge configuration.
func DefaultConfig() Config {
	return Config{MaxBytes: 1250}
}

// Scorer computes evaluations for submission bodies. It is stateless and safe
// for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer creates a Scorer with the given configuration. Zero or negative
// MaxBytes falls back to the default.
func NewScorer(cfg Config) *Scorer {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultConfig().MaxBytes
	}
	return &Scorer{cfg: cfg}
}

// OracleScores is the strict structured response of the external scoring
// oracle, after schema validation. All numeric fields are still unclamped.
type OracleScores struct {
	FirstSentence  int
	Freeze         int
	Space          int
	Linger         int
	Bleak          int
	Detour         int
	MicroRecovery  int
	Rhythm         int
	MicroParticles int

	Layer int
	World int
	Theme int

	Tags     []string
	Analysis string
}

// Evaluation is the complete scoring result for one submission body.
type Evaluation struct {
	// Aesthetic group
	FirstSentence  int `json:"firstSentence"`
	Freeze         int `json:"freeze"`
	Space          int `json:"space"`
	Linger         int `json:"linger"`
	Bleak          int `json:"bleak"`
	Detour         int `json:"detour"`
	MicroRecovery  int `json:"microRecovery"`
	Rhythm         int `json:"rhythm"`
	MicroParticles int `json:"microParticles"`

	// Narrative group, always computed locally
	NarrativeCompression int `json:"narrativeCompression"`
	NarrativeTurn        int `json:"narrativeTurn"`
	NarrativeClutter     int `json:"narrativeClutter"`
	NarrativeRhythm      int `json:"narrativeRhythm"`
	NarrativeScore       int `json:"narrativeScore"`

	// Creativity group
	Layer           int `json:"layer"`
	World           int `json:"world"`
	Theme           int `json:"theme"`
	CreativityScore int `json:"creativityScore"`

	TotalScore int `json:"totalScore"`
	ByteCount  int `json:"byteCount"`

	Tags    []string `json:"tags"`
	Reasons []string `json:"reasons"`
}

// Score evaluates body using the local heuristic only. The result is
// deterministic: identical input yields an identical evaluation.
func (s *Scorer) Score(title, body string) Evaluation {
	return s.compose(body, s.heuristicAesthetics(body), heuristicCreativity(), nil, "")
}

// Merge evaluates body using oracle-supplied aesthetic and creativity scores,
// each clamped to its declared range. The narrative group is always computed
// locally; the oracle is not trusted for structural scoring.
func (s *Scorer) Merge(title, body string, o *OracleScores) Evaluation {
	if o == nil {
		return s.Score(title, body)
	}
	aesthetic := aestheticScores{
		FirstSentence:  Clamp(o.FirstSentence, 0, MaxFirstSentence),
		Freeze:         Clamp(o.Freeze, 0, MaxFreeze),
		Space:          Clamp(o.Space, 0, MaxSpace),
		Linger:         Clamp(o.Linger, 0, MaxLinger),
		Bleak:          Clamp(o.Bleak, 0, MaxBleak),
		Detour:         Clamp(o.Detour, 0, MaxDetour),
		MicroRecovery:  Clamp(o.MicroRecovery, 0, MaxMicroRecovery),
		Rhythm:         Clamp(o.Rhythm, 0, MaxRhythm),
		MicroParticles: Clamp(o.MicroParticles, 0, MaxMicroParticles),
	}
	creativity := creativityScores{
		Layer: Clamp(o.Layer, 0, MaxLayer),
		World: Clamp(o.World, 0, MaxWorld),
		Theme: Clamp(o.Theme, 0, MaxTheme),
	}
	return s.compose(body, aesthetic, creativity, o.Tags, o.Analysis)
}

// compose assembles the three score groups into the final evaluation.
func (s *Scorer) compose(body string, a aestheticScores, c creativityScores, oracleTags []string, analysis string) Evaluation {
	f := Extract(body)

	e := Evaluation{
		FirstSentence:  a.FirstSentence,
		Freeze:         a.Freeze,
		Space:          a.Space,
		Linger:         a.Linger,
		Bleak:          a.Bleak,
		Detour:         a.Detour,
		MicroRecovery:  a.MicroRecovery,
		Rhythm:         a.Rhythm,
		MicroParticles: a.MicroParticles,

		NarrativeCompression: compressionScore(f),
		NarrativeTurn:        turnScore(f),
		NarrativeClutter:     clutterScore(f, body),
		NarrativeRhythm:      narrativeRhythmScore(f),

		Layer:           c.Layer,
		World:           c.World,
		Theme:           c.Theme,
		CreativityScore: c.total(),

		ByteCount: len(body),
	}
	e.NarrativeScore = e.NarrativeCompression + e.NarrativeTurn + e.NarrativeClutter + e.NarrativeRhythm
	e.TotalScore = Clamp(a.total()+e.NarrativeScore+e.CreativityScore, 0, MaxTotal)

	e.Tags = buildTags(e, oracleTags)
	if analysis != "" {
		e.Reasons = []string{analysis}
	} else {
		e.Reasons = []string{FallbackReason}
	}

	return e
}

// buildTags derives the tag list: score band first, feature bonuses, any
// oracle free-text tags, then the sentinel tag, with duplicates removed.
func buildTags(e Evaluation, oracleTags []string) []string {
	tags := make([]string, 0, 4+len(oracleTags))
	switch {
	case e.TotalScore >= 85:
		tags = append(tags, TagElaborate)
	case e.TotalScore >= 70:
		tags = append(tags, TagPolished)
	case e.TotalScore >= 50:
		tags = append(tags, TagStable)
	default:
		tags = append(tags, TagRough)
	}

	if e.Layer >= 3 {
		tags = append(tags, TagLayered)
	}
	if e.MicroParticles >= 4 {
		tags = append(tags, TagParticles)
	}

	tags = append(tags, oracleTags...)
	tags = append(tags, SentinelTag)

	seen := make(map[string]struct{}, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// DisplayScore maps a raw total to the presented score; mid-range scores get
// a flat boost while top scores are shown as-is.
func DisplayScore(raw int) int {
	if raw >= 88 {
		return raw
	}
	return raw + 8
}

// IsLoserScore reports whether the presented score falls below the loser line.
func IsLoserScore(raw int) bool {
	return DisplayScore(raw) < LoserThreshold
}
