package keyword

// Domain classifies a keyword by which curated vocabulary it matched.
type Domain string

const (
	DomainPerson      Domain = "person"
	DomainLocation    Domain = "location"
	DomainEconomy     Domain = "economy"
	DomainEnvironment Domain = "environment"
	DomainGeneral     Domain = "general"
)

// domainPriority is the fixed resolution order when a text matches more than
// one vocabulary.
var domainPriority = []Domain{DomainPerson, DomainLocation, DomainEconomy, DomainEnvironment}

var personVocab = []string{
	"윤석열", "이재명", "바이든", "트럼프", "김정은", "시진핑", "푸틴", "조코비치", "엘론 머스크",
	"김여정", "한덕수", "조 바이든", "마크롱", "기시다", "정은경", "오세훈", "박형준", "유승민",
	"안철수", "홍준표", "이낙연", "추미애", "조국", "문재인", "박근혜", "이명박",
}

var locationVocab = []string{
	"서울", "부산", "대구", "광주", "인천", "울산", "대전", "세종", "수원", "성남",
	"고양", "용인", "창원", "청주", "전주", "포항", "여수", "천안", "안산", "제주",
	"강릉", "춘천", "평창", "경주", "군산", "목포", "진주", "김해", "양산",
}

var economyVocab = []string{
	"삼성", "LG", "코스피", "나스닥", "카카오", "네이버", "현대자동차", "기아", "SK하이닉스",
	"애플", "테슬라", "엔비디아", "아마존", "구글", "넷플릭스", "비트코인", "이더리움", "은행",
	"주식시장", "환율", "금리", "코인", "부동산", "미국 증시", "한국은행", "월스트리트",
}

var environmentVocab = []string{
	"미세먼지", "황사", "폭염", "한파", "태풍", "장마", "홍수", "가뭄", "산불",
	"지진", "기후변화", "온난화", "탄소중립", "재활용", "폭설", "대기오염",
}

// Vocab answers membership questions about the curated keyword vocabularies.
type Vocab struct {
	words map[Domain][]string
	sets  map[Domain]map[string]bool
}

func NewVocab() *Vocab {
	v := &Vocab{
		words: map[Domain][]string{
			DomainPerson:      personVocab,
			DomainLocation:    locationVocab,
			DomainEconomy:     economyVocab,
			DomainEnvironment: environmentVocab,
		},
		sets: make(map[Domain]map[string]bool),
	}
	for domain, words := range v.words {
		set := make(map[string]bool, len(words))
		for _, w := range words {
			set[w] = true
		}
		v.sets[domain] = set
	}
	return v
}

// DomainOf returns the highest-priority vocabulary containing the token, or
// DomainGeneral.
func (v *Vocab) DomainOf(token string) Domain {
	for _, d := range domainPriority {
		if v.sets[d][token] {
			return d
		}
	}
	return DomainGeneral
}

// IsLocation reports whether the token names a known place.
func (v *Vocab) IsLocation(token string) bool {
	return v.sets[DomainLocation][token]
}

// Members returns the vocabulary for a domain in declaration order; nil for
// DomainGeneral.
func (v *Vocab) Members(d Domain) []string {
	return v.words[d]
}
