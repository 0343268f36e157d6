// Package arcana implements the 22-card symbolic classification attached to
// submissions: the static card table, tag normalization, anchor detection
// from a submission's first sentence, candidate selection and the
// score-driven archetype classifier for share cards.
package arcana

import "fmt"

// Card is one of the 22 major arcana, shipped as static metadata with the
// application rather than stored in the database.
type Card struct {
	ID       int      // 0-21
	Code     string   // "fool", "the-magician", ...
	Title    string   // display title for the selection screen
	Keywords []string // keywords used by the candidate picker
	Summary  string   // one-line meaning
}

// CardCount is the number of cards in the deck.
const CardCount = 22

// BackImage is the fixed card-back image path.
const BackImage = "/og/arcana/back.png"

// Meta is the full, immutable deck. Do not mutate at runtime.
var Meta = []Card{
	{ID: 0, Code: "fool", Title: "0. 광대",
		Keywords: []string{"시작", "무지", "충동", "미완"},
		Summary:  "계획보다 충동이 앞서는 시작, 미완의 가능성."},
	{ID: 1, Code: "the-magician", Title: "1. 마법사",
		Keywords: []string{"의지", "집중", "능력", "구현"},
		Summary:  "이미 가진 재료로 뭔가를 만들어내려는 의지와 집중."},
	{ID: 2, Code: "the-high-priestess", Title: "2. 여사제",
		Keywords: []string{"직감", "내면", "비밀", "정적"},
		Summary:  "겉으로 말하지 못한 감정, 조용한 직관과 내면의 탐색."},
	{ID: 3, Code: "the-empress", Title: "3. 여황제",
		Keywords: []string{"풍요", "성장", "감정", "창조"},
		Summary:  "감정과 이미지가 풍성하게 자라는 상태, 돌봄과 성장."},
	{ID: 4, Code: "the-emperor", Title: "4. 황제",
		Keywords: []string{"통제", "구조", "질서", "책임"},
		Summary:  "흐트러진 것을 구조화하고 통제하려는 책임감."},
	{ID: 5, Code: "the-hierophant", Title: "5. 교황",
		Keywords: []string{"전통", "조언", "지식", "체계"},
		Summary:  "이미 정해진 규칙과 전통 속에서 답을 찾으려는 태도."},
	{ID: 6, Code: "the-lovers", Title: "6. 연인",
		Keywords: []string{"선택", "관계", "조화", "감정"},
		Summary:  "관계와 선택 앞에서 망설이는 마음, 둘 사이의 균형."},
	{ID: 7, Code: "the-chariot", Title: "7. 전차",
		Keywords: []string{"진행", "결단", "속도", "야망"},
		Summary:  "속도를 올려 밀어붙이려는 추진력과 경쟁심."},
	{ID: 8, Code: "strength", Title: "8. 힘",
		Keywords: []string{"용기", "내적 힘", "인내", "절제"},
		Summary:  "억누르기보다 달래며 버티는 조용한 인내심."},
	{ID: 9, Code: "the-hermit", Title: "9. 은둔자",
		Keywords: []string{"고독", "탐구", "회상", "내면"},
		Summary:  "관계를 잠시 멀리하고 스스로를 돌아보는 고독의 시간."},
	{ID: 10, Code: "wheel-of-fortune", Title: "10. 운명의 수레바퀴",
		Keywords: []string{"변화", "전환", "순환", "우연"},
		Summary:  "나 때문이라기보다, 흐름이 바뀌는 전환의 순간."},
	{ID: 11, Code: "justice", Title: "11. 정의",
		Keywords: []string{"균형", "판단", "책임", "진실"},
		Summary:  "이득과 손해를 냉정하게 저울질하는 균형 감각."},
	{ID: 12, Code: "the-hanged-man", Title: "12. 매달린 남자",
		Keywords: []string{"정지", "희생", "관점", "포기"},
		Summary:  "일부러 멈춰 서서, 다른 각도로 상황을 보는 정지 상태."},
	{ID: 13, Code: "death", Title: "13. 죽음",
		Keywords: []string{"종결", "전환", "단절", "재시작"},
		Summary:  "예전 방식과의 단절, 새로운 국면으로의 강제 전환."},
	{ID: 14, Code: "temperance", Title: "14. 절제",
		Keywords: []string{"조율", "균형", "중용", "회복"},
		Summary:  "극단 사이에서 온도를 맞추려는 조율과 섞임."},
	{ID: 15, Code: "the-devil", Title: "15. 악마",
		Keywords: []string{"유혹", "집착", "속박", "억눌림"},
		Summary:  "알면서도 끊지 못하는 집착, 중독적인 관계나 생각."},
	{ID: 16, Code: "the-tower", Title: "16. 탑",
		Keywords: []string{"붕괴", "대격변", "위기", "각성"},
		Summary:  "쌓아 올린 것이 한 번에 무너지는 사건, 강제 리셋."},
	{ID: 17, Code: "the-star", Title: "17. 별",
		Keywords: []string{"희망", "회복", "기대", "청명"},
		Summary:  "당장 해결은 아니어도, 다시 해볼까 싶은 희미한 희망."},
	{ID: 18, Code: "the-moon", Title: "18. 달",
		Keywords: []string{"불안", "환상", "감정", "모호함"},
		Summary:  "확신은 없고 감정만 크게 흔들리는, 불안과 상상의 구간."},
	{ID: 19, Code: "the-sun", Title: "19. 태양",
		Keywords: []string{"성취", "기쁨", "확신", "명료"},
		Summary:  "숨길 것 없이 드러나는 성취감, 밝고 단순한 기쁨."},
	{ID: 20, Code: "judgement", Title: "20. 심판",
		Keywords: []string{"부름", "변화", "자각", "정리"},
		Summary:  "미뤄둔 것들을 정리하고, 다음 단계로 넘어가라는 호출."},
	{ID: 21, Code: "the-world", Title: "21. 세계",
		Keywords: []string{"완성", "통합", "마무리", "여정"},
		Summary:  "한 사이클이 잘 마무리되고, 다음 여정을 준비하는 완성."},
}

// ByID returns the card with the given id, or nil when out of range.
func ByID(id int) *Card {
	if id < 0 || id >= len(Meta) {
		return nil
	}
	return &Meta[id]
}

// ValidID reports whether id falls within the enumerated card range.
func ValidID(id int) bool {
	return id >= 0 && id < CardCount
}

// ImagePath returns the front image path for a card id; unknown ids fall
// back to the fool.
func ImagePath(id int) string {
	card := ByID(id)
	if card == nil {
		card = &Meta[0]
	}
	return fmt.Sprintf("/og/arcana/%02d-%s.png", card.ID, card.Code)
}
