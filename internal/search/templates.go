package search

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/sswu-capstoneDesign2025/backend/internal/keyword"
)

// Search engines return more varied results when the same keyword is phrased
// differently between runs, so each category carries several equivalent
// templates and one is picked at random. The choice has no semantic effect.
var queryTemplates = map[keyword.Domain][]string{
	keyword.DomainPerson: {
		"%s 발언", "%s 인터뷰", "%s 관련 기사", "%s 최근 행보",
	},
	keyword.DomainLocation: {
		"%s 지역 뉴스", "%s 현지 소식", "%s 최근 소식", "%s 이슈",
	},
	keyword.DomainEconomy: {
		"%s 주가 뉴스", "%s 시장 반응", "%s 경제 뉴스", "%s 관련 동향",
	},
	keyword.DomainEnvironment: {
		"%s 환경 뉴스", "%s 피해 상황", "%s 예보 정리", "%s 최신 소식",
	},
	keyword.DomainGeneral: {
		"%s 최신 뉴스", "%s 관련 이슈", "%s 최신 소식", "%s 이슈 정리",
	},
}

// Refiner rewrites a keyword into a search-friendly query phrase. The
// randomness source is injected so tests can fix the template choice.
type Refiner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRefiner(seed int64) *Refiner {
	return &Refiner{rng: rand.New(rand.NewSource(seed))}
}

// Refine picks one of the category's templates for the keyword.
func (r *Refiner) Refine(kw string, domain keyword.Domain) string {
	templates, ok := queryTemplates[domain]
	if !ok {
		templates = queryTemplates[keyword.DomainGeneral]
	}

	r.mu.Lock()
	idx := r.rng.Intn(len(templates))
	r.mu.Unlock()

	return fmt.Sprintf(templates[idx], kw)
}
