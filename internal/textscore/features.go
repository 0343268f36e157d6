package textscore

import (
	"math"
	"strings"
	"unicode/utf8"
)

// eventStems is a fixed lexicon of Korean verb stems that signal a concrete
// event happening in the text, as opposed to pure description.
var eventStems = []string{
	"떠났", "떠난", "만났", "헤어졌", "죽", "울었", "웃었",
	"깨달", "잃었", "찾았", "돌아왔", "멈췄", "시작했", "끝났", "무너졌",
}

// transitionWords is a fixed lexicon of transition adverbs and conjunctions.
var transitionWords = []string{
	"하지만", "그러나", "그런데", "다만", "그래서", "반면", "그러고는",
}

// fillerAdverbs is a fixed lexicon of filler adverbs that pad sentences
// without adding content.
var fillerAdverbs = []string{
	"정말", "매우", "사실", "갑자기",
}

// longSentenceRunes is the character length above which a sentence counts as long.
const longSentenceRunes = 80

// Features holds the structural statistics derived from segmented text.
// All fields are pure functions of the input text.
type Features struct {
	SentenceCount      int     // number of sentences
	TokenCount         int     // number of word tokens
	UniqueTokenRatio   float64 // distinct tokens / TokenCount, 0 when empty
	HasEvent           bool    // text contains an event verb stem
	TransitionHits     int     // total occurrences of transition words
	LengthSpread       int     // abs rune-length difference of first and last sentence
	StartWordDiversity int     // distinct sentence-opening tokens
	StartWordMaxRepeat int     // highest repeat count of a single opening token
	RepeatedTokenCount int     // distinct tokens occurring three or more times
	LongSentenceCount  int     // sentences longer than longSentenceRunes
	LengthStdDev       float64 // population std deviation of sentence rune lengths
}

// Extract computes the structural features of body. It is deterministic and
// stateless; identical input always yields identical features.
func Extract(body string) Features {
	sentences := SplitSentences(body)
	tokens := Tokenize(body)

	f := Features{
		SentenceCount: len(sentences),
		TokenCount:    len(tokens),
	}

	if len(tokens) > 0 {
		distinct := make(map[string]int, len(tokens))
		for _, t := range tokens {
			distinct[t]++
		}
		f.UniqueTokenRatio = float64(len(distinct)) / float64(len(tokens))
		for _, n := range distinct {
			if n >= 3 {
				f.RepeatedTokenCount++
			}
		}
	}

	for _, stem := range eventStems {
		if strings.Contains(body, stem) {
			f.HasEvent = true
			break
		}
	}

	for _, w := range transitionWords {
		f.TransitionHits += strings.Count(body, w)
	}

	if len(sentences) > 0 {
		lengths := make([]int, len(sentences))
		starts := make(map[string]int, len(sentences))
		for i, s := range sentences {
			lengths[i] = utf8.RuneCountInString(s)
			if lengths[i] > longSentenceRunes {
				f.LongSentenceCount++
			}
			if tok := firstToken(s); tok != "" {
				starts[tok]++
			}
		}

		spread := lengths[0] - lengths[len(lengths)-1]
		if spread < 0 {
			spread = -spread
		}
		f.LengthSpread = spread

		f.StartWordDiversity = len(starts)
		for _, n := range starts {
			if n > f.StartWordMaxRepeat {
				f.StartWordMaxRepeat = n
			}
		}

		f.LengthStdDev = stdDev(lengths)
	}

	return f
}

// stdDev computes the population standard deviation of the given lengths.
func stdDev(lengths []int) float64 {
	if len(lengths) == 0 {
		return 0
	}
	var sum float64
	for _, l := range lengths {
		sum += float64(l)
	}
	mean := sum / float64(len(lengths))

	var variance float64
	for _, l := range lengths {
		d := float64(l) - mean
		variance += d * d
	}
	variance /= float64(len(lengths))

	return math.Sqrt(variance)
}

// containsFiller reports whether the body uses any filler adverb.
func containsFiller(body string) bool {
	for _, w := range fillerAdverbs {
		if strings.Contains(body, w) {
			return true
		}
	}
	return false
}
