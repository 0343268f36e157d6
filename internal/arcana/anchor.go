package arcana

import (
	"regexp"
	"strings"
)

// seedSentences holds the per-card seed corpus used to infer an anchor card
// from a submission's first sentence.
var seedSentences = map[int][]string{
	0:  {"아무 계획도 없이 집을 나섰다.", "어디로 가는지도 모른 채 첫 발을 내디뎠다."},
	1:  {"가진 것은 많지 않았지만 전부 책상 위에 올려놓았다.", "이번에는 내 손으로 만들어 보기로 했다."},
	2:  {"말하지 않은 마음이 하나 있다.", "조용한 방에서 혼자 오래 생각했다."},
	3:  {"베란다의 화분이 또 하나 꽃을 피웠다.", "누군가를 돌보는 일이 나를 자라게 했다."},
	4:  {"책상 위를 정리하고 규칙을 세웠다.", "흐트러진 하루를 다시 질서 안으로 밀어 넣었다."},
	5:  {"선생님이 해 준 말을 아직 기억한다.", "오래된 책에서 답을 찾으려 했다."},
	6:  {"둘 중 하나를 골라야 했다.", "그 사람 앞에서 나는 자꾸 망설였다."},
	7:  {"속도를 늦출 생각은 없었다.", "이번에는 끝까지 밀어붙이기로 했다."},
	8:  {"화를 내는 대신 숨을 골랐다.", "버티는 것도 힘이라는 걸 알게 됐다."},
	9:  {"연락을 끊고 혼자 지낸 지 한 달이 됐다.", "혼자만의 시간이 필요했다."},
	10: {"바람의 방향이 바뀌고 있었다.", "내 뜻과 상관없이 흐름이 달라졌다."},
	11: {"이득과 손해를 저울에 올려 보았다.", "사실을 사실대로 적기로 했다."},
	12: {"잠시 멈춰 서서 거꾸로 생각해 보았다.", "아무것도 하지 않는 시간을 견뎠다."},
	13: {"그날로 예전의 나는 끝났다.", "오래 쓰던 물건을 전부 버렸다."},
	14: {"뜨겁지도 차갑지도 않게 온도를 맞췄다.", "극단 사이에서 중간을 찾고 있었다."},
	15: {"끊어야 한다는 걸 알면서도 또 손이 갔다.", "그 습관이 나를 붙잡고 있었다."},
	16: {"쌓아 올린 것이 한순간에 무너졌다.", "전화 한 통으로 모든 것이 달라졌다."},
	17: {"그래도 다시 해볼까 하는 마음이 생겼다.", "밤하늘에 별 하나가 유난히 밝았다."},
	18: {"무엇이 진짜인지 알 수 없었다.", "불안한 꿈을 꾸다 새벽에 깼다."},
	19: {"오랜만에 아무 걱정 없이 웃었다.", "햇볕 아래 모든 것이 선명했다."},
	20: {"미뤄둔 일들을 이제 정리할 때가 됐다.", "어디선가 나를 부르는 소리가 들렸다."},
	21: {"긴 여정이 드디어 한 바퀴를 돌았다.", "끝난 자리에서 다음 시작이 보였다."},
}

var firstSentenceRe = regexp.MustCompile(`^.+?[.!?…]`)

// FirstSentence extracts an approximate first sentence: the first line up to
// terminal punctuation, with whitespace collapsed.
func FirstSentence(raw string) string {
	text := strings.Join(strings.Fields(raw), " ")
	if text == "" {
		return ""
	}
	if m := firstSentenceRe.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return text
}

// seedTokenize lowercases and splits on whitespace and commas, dropping
// tokens shorter than two runes.
func seedTokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// similarity counts common tokens between two sentences. Only the relative
// ranking matters, so a plain overlap count is enough.
func similarity(a, b string) int {
	aTokens := seedTokenize(a)
	bTokens := seedTokenize(b)
	if len(aTokens) == 0 || len(bTokens) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(bTokens))
	for _, t := range bTokens {
		set[t] = struct{}{}
	}
	overlap := 0
	for _, t := range aTokens {
		if _, ok := set[t]; ok {
			overlap++
		}
	}
	return overlap
}

// DetectAnchor infers the card best matching the first sentence: an exact
// seed match wins outright, otherwise the card with the highest token
// overlap. Returns ok=false when nothing matches at all.
func DetectAnchor(firstSentence string) (id int, ok bool) {
	sentence := strings.TrimSpace(firstSentence)
	if sentence == "" {
		return 0, false
	}

	for cardID, seeds := range seedSentences {
		for _, seed := range seeds {
			if seed == sentence {
				return cardID, true
			}
		}
	}

	bestID, bestScore := 0, 0
	// deterministic iteration so ties always resolve to the lowest card id
	for cardID := 0; cardID < CardCount; cardID++ {
		for _, seed := range seedSentences[cardID] {
			if s := similarity(sentence, seed); s > bestScore {
				bestScore = s
				bestID = cardID
			}
		}
	}
	if bestScore == 0 {
		return 0, false
	}
	return bestID, true
}
