package textscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = "그날 밤, 그는 조용히 떠났다. 하지만 나는 아무 말도 하지 못했다.\n" +
	"바람이 불었고, 창문이 흔들렸다. 그러나 방 안은 고요했다.\n" +
	"아침이 왔을 때, 나는 비로소 깨달았다."

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	first := s.Score("제목", sampleBody)
	second := s.Score("제목", sampleBody)

	assert.Equal(t, first, second)
}

func TestScoreBounds(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())

	bodies := []string{
		"가",
		"비가 온다.",
		sampleBody,
		"정말 정말 정말 같다 같다 같다 같다 같다 같다 같다",
	}

	for _, body := range bodies {
		e := s.Score("", body)

		assert.GreaterOrEqual(t, e.TotalScore, 0)
		assert.LessOrEqual(t, e.TotalScore, MaxTotal)

		assert.LessOrEqual(t, e.FirstSentence, MaxFirstSentence)
		assert.LessOrEqual(t, e.Freeze, MaxFreeze)
		assert.LessOrEqual(t, e.Space, MaxSpace)
		assert.LessOrEqual(t, e.Linger, MaxLinger)
		assert.LessOrEqual(t, e.Bleak, MaxBleak)
		assert.LessOrEqual(t, e.Detour, MaxDetour)
		assert.LessOrEqual(t, e.MicroRecovery, MaxMicroRecovery)
		assert.LessOrEqual(t, e.Rhythm, MaxRhythm)
		assert.LessOrEqual(t, e.MicroParticles, MaxMicroParticles)

		assert.LessOrEqual(t, e.NarrativeCompression, MaxCompression)
		assert.LessOrEqual(t, e.NarrativeTurn, MaxTurn)
		assert.LessOrEqual(t, e.NarrativeClutter, MaxClutter)
		assert.LessOrEqual(t, e.NarrativeRhythm, MaxNarrativeRhythm)

		assert.LessOrEqual(t, e.Layer, MaxLayer)
		assert.LessOrEqual(t, e.World, MaxWorld)
		assert.LessOrEqual(t, e.Theme, MaxTheme)

		assert.Equal(t, len(body), e.ByteCount)
	}
}

func TestScoreGroupTotals(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	e := s.Score("", sampleBody)

	assert.Equal(t, e.NarrativeCompression+e.NarrativeTurn+e.NarrativeClutter+e.NarrativeRhythm, e.NarrativeScore)
	assert.Equal(t, e.Layer+e.World+e.Theme, e.CreativityScore)
}

func TestScoreFallbackReason(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	e := s.Score("", sampleBody)

	require.Len(t, e.Reasons, 1)
	assert.Equal(t, FallbackReason, e.Reasons[0])
}

func TestScoreTags(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	e := s.Score("", sampleBody)

	require.NotEmpty(t, e.Tags)
	assert.Contains(t, []string{TagElaborate, TagPolished, TagStable, TagRough}, e.Tags[0])
	assert.Equal(t, SentinelTag, e.Tags[len(e.Tags)-1])

	// heuristic creativity always yields Layer 3
	assert.Contains(t, e.Tags, TagLayered)
}

func TestMergeNilFallsBackToHeuristic(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	assert.Equal(t, s.Score("제목", sampleBody), s.Merge("제목", sampleBody, nil))
}

func TestMergeClampsOracleScores(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())

	high := &OracleScores{
		FirstSentence:  999,
		Freeze:         999,
		Space:          999,
		Linger:         999,
		Bleak:          999,
		Detour:         999,
		MicroRecovery:  999,
		Rhythm:         999,
		MicroParticles: 999,
		Layer:          999,
		World:          999,
		Theme:          999,
	}
	e := s.Merge("", sampleBody, high)

	assert.Equal(t, MaxFirstSentence, e.FirstSentence)
	assert.Equal(t, MaxFreeze, e.Freeze)
	assert.Equal(t, MaxSpace, e.Space)
	assert.Equal(t, MaxLinger, e.Linger)
	assert.Equal(t, MaxBleak, e.Bleak)
	assert.Equal(t, MaxDetour, e.Detour)
	assert.Equal(t, MaxMicroRecovery, e.MicroRecovery)
	assert.Equal(t, MaxRhythm, e.Rhythm)
	assert.Equal(t, MaxMicroParticles, e.MicroParticles)
	assert.Equal(t, MaxLayer, e.Layer)
	assert.Equal(t, MaxWorld, e.World)
	assert.Equal(t, MaxTheme, e.Theme)
	assert.LessOrEqual(t, e.TotalScore, MaxTotal)

	low := &OracleScores{
		FirstSentence: -10,
		Freeze:        -10,
		Layer:         -10,
	}
	e = s.Merge("", sampleBody, low)

	assert.Equal(t, 0, e.FirstSentence)
	assert.Equal(t, 0, e.Freeze)
	assert.Equal(t, 0, e.Layer)
}

func TestMergeNarrativeStaysLocal(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	local := s.Score("", sampleBody)
	merged := s.Merge("", sampleBody, &OracleScores{
		FirstSentence: 8, Freeze: 10, Space: 10, Linger: 10,
		Bleak: 6, Detour: 8, MicroRecovery: 6, Rhythm: 4, MicroParticles: 6,
		Layer: 4, World: 3, Theme: 3,
	})

	assert.Equal(t, local.NarrativeCompression, merged.NarrativeCompression)
	assert.Equal(t, local.NarrativeTurn, merged.NarrativeTurn)
	assert.Equal(t, local.NarrativeClutter, merged.NarrativeClutter)
	assert.Equal(t, local.NarrativeRhythm, merged.NarrativeRhythm)
	assert.Equal(t, local.NarrativeScore, merged.NarrativeScore)
}

func TestMergeOracleTagsAndAnalysis(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	e := s.Merge("", sampleBody, &OracleScores{
		Tags:     []string{"야경", SentinelTag},
		Analysis: "문장의 호흡이 안정적이다.",
	})

	assert.Contains(t, e.Tags, "야경")
	assert.Equal(t, SentinelTag, e.Tags[len(e.Tags)-1])

	// sentinel tag appears exactly once even when the oracle echoes it
	count := 0
	for _, tag := range e.Tags {
		if tag == SentinelTag {
			count++
		}
	}
	assert.Equal(t, 1, count)

	require.Len(t, e.Reasons, 1)
	assert.Equal(t, "문장의 호흡이 안정적이다.", e.Reasons[0])
}

func TestScoreShortDegenerateBody(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	e := s.Score("t", "짧다.")

	assert.Equal(t, 0, e.NarrativeCompression)
	assert.Equal(t, 0, e.NarrativeTurn)
	assert.Less(t, e.TotalScore, 50)
	assert.Contains(t, e.Tags, TagRough)
	assert.Contains(t, e.Tags, SentinelTag)
}

func TestScoreStructuredBody(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig())
	// five sentences, two transition words, a clear event verb
	e := s.Score("밤", sampleBody)

	assert.Equal(t, 8, e.NarrativeCompression)
	assert.Positive(t, e.NarrativeTurn)
	assert.Greater(t, e.TotalScore, 30)
}

func TestDisplayScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  int
		want int
	}{
		{raw: 0, want: 8},
		{raw: 42, want: 50},
		{raw: 80, want: 88},
		{raw: 87, want: 95},
		{raw: 88, want: 88},
		{raw: 95, want: 95},
		{raw: 100, want: 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayScore(tt.raw), "raw %d", tt.raw)
	}
}

func TestIsLoserScore(t *testing.T) {
	t.Parallel()

	assert.True(t, IsLoserScore(41))
	assert.False(t, IsLoserScore(42))
	assert.False(t, IsLoserScore(90))
}

func TestNewScorerDefaultsOnInvalidConfig(t *testing.T) {
	t.Parallel()

	s := NewScorer(Config{MaxBytes: 0})
	e := s.Score("", sampleBody)

	assert.Positive(t, e.TotalScore)
}

func TestCompressionScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    Features
		want int
	}{
		{"too few tokens", Features{TokenCount: 3, UniqueTokenRatio: 1, SentenceCount: 1}, 0},
		{"degenerate repetition", Features{TokenCount: 10, UniqueTokenRatio: 0.2, SentenceCount: 4}, 0},
		{"ideal range", Features{TokenCount: 20, UniqueTokenRatio: 0.9, SentenceCount: 5}, 8},
		{"edge of range", Features{TokenCount: 20, UniqueTokenRatio: 0.9, SentenceCount: 2}, 5},
		{"single sentence", Features{TokenCount: 20, UniqueTokenRatio: 0.9, SentenceCount: 1}, 3},
		{"sprawling", Features{TokenCount: 60, UniqueTokenRatio: 0.9, SentenceCount: 12}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, compressionScore(tt.f))
		})
	}
}

func TestTurnScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    Features
		want int
	}{
		{"no event", Features{TransitionHits: 2}, 0},
		{"no transition", Features{HasEvent: true}, 0},
		{"overuse collapses", Features{HasEvent: true, TransitionHits: 5}, 0},
		{"base", Features{HasEvent: true, TransitionHits: 1}, 2},
		{"full", Features{HasEvent: true, TransitionHits: 2, LengthSpread: 20, StartWordDiversity: 3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, turnScore(tt.f))
		})
	}
}

func TestClutterScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, clutterScore(Features{}, "깨끗한 문장이다."))
	assert.Equal(t, 3, clutterScore(Features{}, "정말 멋진 문장이다."))
	assert.Equal(t, 2, clutterScore(Features{RepeatedTokenCount: 2}, "정말 멋진 문장이다."))
	assert.Equal(t, 1, clutterScore(Features{RepeatedTokenCount: 2, LongSentenceCount: 2}, "정말 멋진 문장이다."))
}
