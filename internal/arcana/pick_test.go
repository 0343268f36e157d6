package arcana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardIDs(cards []Card) []int {
	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func TestCandidatesCountAndDistinct(t *testing.T) {
	SeedRand(1)

	cards := Candidates(nil, nil, 3)
	require.Len(t, cards, 3)

	seen := make(map[int]struct{})
	for _, c := range cards {
		_, dup := seen[c.ID]
		assert.False(t, dup, "duplicate card %d", c.ID)
		seen[c.ID] = struct{}{}
	}
}

func TestCandidatesIncludesAnchor(t *testing.T) {
	SeedRand(2)

	anchor := 16
	for range 20 {
		cards := Candidates(nil, &anchor, 3)
		assert.Contains(t, cardIDs(cards), anchor)
	}
}

func TestCandidatesInvalidAnchorIgnored(t *testing.T) {
	SeedRand(3)

	anchor := 99
	cards := Candidates(nil, &anchor, 3)
	require.Len(t, cards, 3)
	assert.NotContains(t, cardIDs(cards), anchor)
}

func TestCandidatesTagOverlapRanked(t *testing.T) {
	SeedRand(4)

	// "불안" reaches the moon card through the alias table
	cards := Candidates([]string{"#불안"}, nil, 3)
	assert.Contains(t, cardIDs(cards), 18)
}

func TestCandidatesDefaultCount(t *testing.T) {
	SeedRand(5)

	cards := Candidates(nil, nil, 0)
	assert.Len(t, cards, DefaultCandidates)
}

func TestCandidatesCappedAtDeckSize(t *testing.T) {
	SeedRand(6)

	cards := Candidates(nil, nil, 100)
	require.Len(t, cards, CardCount)

	seen := make(map[int]struct{})
	for _, c := range cards {
		seen[c.ID] = struct{}{}
	}
	assert.Len(t, seen, CardCount)
}

func TestCandidatesReproducibleWithSeed(t *testing.T) {
	anchor := 7

	SeedRand(42)
	first := Candidates([]string{"#이별"}, &anchor, 3)

	SeedRand(42)
	second := Candidates([]string{"#이별"}, &anchor, 3)

	assert.Equal(t, first, second)
}
