package arcana

import "strings"

// tagAliases expands colloquial hashtags into the emotion keywords the card
// table is indexed by. Grown one entry at a time as real tags show up.
var tagAliases = map[string][]string{
	// 일 / 커리어
	"업무스트레스": {"스트레스", "현실", "노동", "회사", "압박"},
	"야근":     {"야근", "일", "회사", "전진", "속도", "성과"},
	"퇴사욕구":   {"퇴사", "끝", "변화", "새출발", "정리"},
	"번아웃":    {"번아웃", "지침", "무기력", "멈춤", "휴식"},
	"이직고민":   {"이직", "갈림길", "선택", "변화"},
	"프로젝트지옥": {"프로젝트", "압박", "야근", "몰입"},

	// 감정
	"불안":   {"불안", "공포", "의심", "혼란"},
	"우울":   {"우울", "고독", "침묵"},
	"공허함":  {"공허", "허무", "멍해짐"},
	"자기혐오": {"혐오", "자책", "죄책감"},
	"무기력":  {"무기력", "지침", "멈춤"},

	// 관계 / 연애
	"짝사랑":   {"짝사랑", "일방적", "기대", "관계"},
	"이별":    {"이별", "단절", "끝", "상실"},
	"권태기":   {"권태", "무료함", "갈등"},
	"장거리연애": {"거리", "그리움", "기다림"},
	"가족갈등":  {"가족", "갈등", "책임"},

	// 워라벨 / 회복
	"워라밸":    {"워라밸", "균형", "휴식", "조절"},
	"주말힐링":   {"주말", "휴식", "회복"},
	"여행욕구":   {"여행", "탈출", "변화", "자유"},
	"혼자만의시간": {"혼자", "고독", "휴식"},

	// 중독 / 집착
	"명품집착":   {"명품", "소비", "집착", "욕망"},
	"쇼핑중독":   {"쇼핑", "소비", "중독"},
	"스마트폰중독": {"스마트폰", "중독", "회피"},
	"알코올의존":  {"알코올", "중독", "야식"},

	// 분노 / 경쟁
	"분노":   {"분노", "폭발", "힘", "충돌"},
	"질투":   {"질투", "비교", "욕망"},
	"경쟁의식": {"경쟁", "속도", "승부"},

	// 자아 / 정체성
	"나만빼고다행복해보임": {"비교", "외로움", "열등감"},
	"정체성혼란":      {"혼란", "정체성", "방향상실"},
}

// NormalizeTags strips hashtag prefixes and expands each tag through the
// alias table. The base tag itself is always kept.
func NormalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw)*2)
	for _, r := range raw {
		base := strings.TrimSpace(strings.TrimPrefix(r, "#"))
		if base == "" {
			continue
		}
		out = append(out, base)
		out = append(out, tagAliases[base]...)
	}
	return out
}
