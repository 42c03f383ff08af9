package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/sswu-capstoneDesign2025/backend/internal/article"
	"github.com/sswu-capstoneDesign2025/backend/internal/llm"
	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// Result carries the per-article summaries, in input order, plus the single
// combined narrative.
type Result struct {
	Summaries []string
	Combined  string
}

const (
	systemPrompt = "너는 어린이용 뉴스 편집자야. 출력은 반드시 JSON으로만 해."

	noArticlesMessage     = "요약할 기사를 찾을 수 없습니다. 다시 시도해 주세요."
	combineFailureMessage = "요약을 통합하는 데 실패했어요. 다시 시도해 주세요."

	chunkOutputTokens   = 1500
	combineOutputTokens = 800
	summaryTemperature  = 0.2
)

// Pipeline turns fetched articles into simplified summaries and one combined
// story. Every model failure degrades to fewer summaries; the pipeline itself
// never returns an error.
type Pipeline struct {
	llm     llm.Client
	chunker *Chunker
	cache   Cache
}

func NewPipeline(client llm.Client, chunker *Chunker, cache Cache) *Pipeline {
	if cache == nil {
		cache = NopCache{}
	}
	return &Pipeline{llm: client, chunker: chunker, cache: cache}
}

// SummarizeAndCombine runs the full pipeline over the given articles.
func (p *Pipeline) SummarizeAndCombine(ctx context.Context, records []article.Record) Result {
	logger.Log.Infof("summarizing %d articles", len(records))

	byIndex := make([]string, len(records))

	// Cached articles skip the model entirely; only misses are chunked.
	var misses []article.Record
	missIndex := make([]int, 0, len(records))
	for i, rec := range records {
		if cached, ok := p.cache.Get(ctx, rec.URL); ok && cached != "" {
			byIndex[i] = cached
			continue
		}
		misses = append(misses, rec)
		missIndex = append(missIndex, i)
	}

	chunks := p.chunker.Chunk(misses)

	// Chunks are independent, so they run concurrently; order is restored
	// from each block's original index afterwards.
	chunkOut := make([][]string, len(chunks))
	var wg sync.WaitGroup
	for ci, chunk := range chunks {
		wg.Add(1)
		go func(ci int, chunk Chunk) {
			defer wg.Done()
			chunkOut[ci] = p.summarizeChunk(ctx, chunk)
		}(ci, chunk)
	}
	wg.Wait()

	for ci, chunk := range chunks {
		summaries := chunkOut[ci]
		for bi, block := range chunk.Blocks {
			if bi >= len(summaries) {
				break
			}
			orig := missIndex[block.Index]
			byIndex[orig] = summaries[bi]
			p.cache.Set(ctx, block.URL, summaries[bi])
		}
	}

	flat := make([]string, 0, len(byIndex))
	for _, s := range byIndex {
		if s != "" {
			flat = append(flat, s)
		}
	}

	if len(flat) == 0 {
		return Result{Summaries: []string{}, Combined: noArticlesMessage}
	}

	return Result{Summaries: flat, Combined: p.combine(ctx, flat)}
}

type summariesPayload struct {
	Summaries []string `json:"summaries"`
}

// summarizeChunk asks the model for one simplified summary per article in the
// chunk. An unusable response means the whole chunk contributes nothing.
func (p *Pipeline) summarizeChunk(ctx context.Context, chunk Chunk) []string {
	var joined strings.Builder
	for _, block := range chunk.Blocks {
		joined.WriteString(block.Rendered)
	}

	prompt := fmt.Sprintf(`다음 %d건의 뉴스를 처리하세요:
1) 각 기사를 1000자 내외로 간결하게 요약
2) 경계선 지능형 장애인 수준의 사용자도 이해할 수 있도록 어려운 단어는 쉬운 말로 바꿔주세요
3) 필요하다면 어려운 말 앞에 추가 설명을 넣어주세요. (예: 배터리의 한 종류인 납축전지)

[기사 블록]
%s

[출력 형식 - JSON]
{"summaries": ["기사1 요약+쉬운 문장", "기사2 요약+쉬운 문장"]}`, len(chunk.Blocks), joined.String())

	out, err := p.llm.Complete(ctx, systemPrompt, prompt, summaryTemperature, chunkOutputTokens)
	if err != nil {
		logger.Log.Errorf("chunk summarization failed: %v", err)
		return nil
	}

	raw, ok := llm.ExtractJSONObject(out)
	if !ok {
		logger.Log.Warnf("chunk response had no JSON object")
		return nil
	}
	var payload summariesPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Log.Warnf("chunk response parse failed: %v", err)
		return nil
	}
	return payload.Summaries
}

type combinedPayload struct {
	Combined string `json:"combined"`
}

// combine merges the flat summary list into one deduplicated easy-language
// narrative with the fixed closing sentence.
func (p *Pipeline) combine(ctx context.Context, summaries []string) string {
	listed, err := json.Marshal(summaries)
	if err != nil {
		return combineFailureMessage
	}

	prompt := fmt.Sprintf(`아래는 여러 뉴스 요약입니다.
- 경계선 지능형 장애인 수준의 사용자도 이해할 수 있도록 한 문장에 하나의 정보만 담고, 어려운 말은 쉬운 말로 바꿔주세요.
- 중복 없이 하나의 쉽고 명확한 이야기로 이어 붙이세요.
- 마지막에 '이상이 오늘의 뉴스입니다.'로 마무리하세요.

[요약 목록]
%s

[출력 형식 - JSON]
{"combined": "여기에 통합 결과를 쓰세요"}`, string(listed))

	out, err := p.llm.Complete(ctx, systemPrompt, prompt, summaryTemperature, combineOutputTokens)
	if err != nil {
		logger.Log.Errorf("combine request failed: %v", err)
		return combineFailureMessage
	}

	raw, ok := llm.ExtractJSONObject(out)
	if !ok {
		return combineFailureMessage
	}
	var payload combinedPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.Combined == "" {
		logger.Log.Warnf("combine response parse failed: %v", err)
		return combineFailureMessage
	}
	return payload.Combined
}
