package arcana

import (
	"math/rand/v2"
	"sort"
	"sync"
)

// DefaultCandidates is the number of cards offered when the caller does not
// specify a count.
const DefaultCandidates = 3

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
)

// SeedRand re-seeds the package random source. Intended for tests that need
// reproducible shuffles.
func SeedRand(seed uint64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewPCG(seed, seed))
}

func shuffleCards(cards []Card) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Candidates selects n distinct candidate cards for an entry. The anchor
// card, when valid, is always included; the rest are ranked by keyword
// overlap with the normalized tags, topped up at random, and the final set
// is shuffled so the anchor position is not predictable.
func Candidates(tags []string, anchor *int, n int) []Card {
	if n <= 0 {
		n = DefaultCandidates
	}
	if n > CardCount {
		n = CardCount
	}

	tagSet := make(map[string]struct{})
	for _, t := range NormalizeTags(tags) {
		tagSet[t] = struct{}{}
	}

	picked := make([]Card, 0, n)
	inSet := make(map[int]struct{}, n)

	if anchor != nil {
		if card := ByID(*anchor); card != nil {
			picked = append(picked, *card)
			inSet[card.ID] = struct{}{}
		}
	}

	// rank the remaining cards by keyword overlap
	type scored struct {
		card  Card
		score int
	}
	ranked := make([]scored, 0, CardCount)
	for _, card := range Meta {
		if _, dup := inSet[card.ID]; dup {
			continue
		}
		s := 0
		for _, kw := range card.Keywords {
			if _, hit := tagSet[kw]; hit {
				s++
			}
		}
		if s > 0 {
			ranked = append(ranked, scored{card: card, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	for _, r := range ranked {
		if len(picked) >= n {
			break
		}
		picked = append(picked, r.card)
		inSet[r.card.ID] = struct{}{}
	}

	// top up at random from whatever is left
	if len(picked) < n {
		pool := make([]Card, 0, CardCount-len(picked))
		for _, card := range Meta {
			if _, dup := inSet[card.ID]; !dup {
				pool = append(pool, card)
			}
		}
		shuffleCards(pool)
		for _, card := range pool {
			if len(picked) >= n {
				break
			}
			picked = append(picked, card)
		}
	}

	shuffleCards(picked)
	return picked[:n]
}
