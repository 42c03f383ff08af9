package keyword

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// stopwords are time-ish fillers that never make useful search keywords.
var stopwords = map[string]bool{
	"오늘": true, "내일": true, "어제": true, "지금": true,
	"방금": true, "이번": true, "다음": true, "지난": true,
}

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Extractor turns free text into a relevance-ranked keyword list.
type Extractor struct {
	tagger Tagger
	vocab  *Vocab
}

func NewExtractor(tagger Tagger, vocab *Vocab) *Extractor {
	return &Extractor{tagger: tagger, vocab: vocab}
}

// Extract returns at most topN keywords, most specific first. The result is
// never empty: when nothing survives filtering the trimmed input text is
// returned as the sole keyword.
func (e *Extractor) Extract(ctx context.Context, text string, topN int) []string {
	if topN <= 0 {
		topN = 3
	}

	cleaned := punctuation.ReplaceAllString(text, " ")

	nouns := e.nouns(ctx, cleaned)

	filtered := nouns[:0:0]
	for _, n := range nouns {
		if utf8.RuneCountInString(n) < 2 || stopwords[n] {
			continue
		}
		filtered = append(filtered, n)
	}

	if matched := e.domainKeywords(text, filtered, topN); len(matched) > 0 {
		return matched
	}

	if phrases := rankNgrams(filtered, topN); len(phrases) > 0 {
		return phrases
	}

	fallback := strings.TrimSpace(text)
	if fallback == "" {
		return nil
	}
	return []string{fallback}
}

func (e *Extractor) nouns(ctx context.Context, text string) []string {
	if e.tagger == nil {
		// No tagger configured: every whitespace token is a candidate.
		return strings.Fields(text)
	}
	var out []string
	for _, tok := range e.tagger.Tag(ctx, text) {
		if tok.POS == "Noun" {
			out = append(out, tok.Text)
		}
	}
	return out
}

// domainKeywords short-circuits general scoring when any token belongs to a
// curated vocabulary: candidates are then restricted to vocabulary entries
// that appear verbatim in the original text.
func (e *Extractor) domainKeywords(original string, tokens []string, topN int) []string {
	matched := DomainGeneral
	for _, d := range domainPriority {
		for _, tok := range tokens {
			if e.vocab.sets[d][tok] {
				matched = d
				break
			}
		}
		if matched != DomainGeneral {
			break
		}
	}
	if matched == DomainGeneral {
		return nil
	}

	var out []string
	for _, w := range e.vocab.Members(matched) {
		if strings.Contains(original, w) {
			out = append(out, w)
			if len(out) == topN {
				break
			}
		}
	}
	return out
}

type phrase struct {
	text  string
	words int
	count int
	first int
}

// rankNgrams scores contiguous 3-grams and 2-grams by occurrence count,
// breaking ties toward longer phrases, then pads with unused single tokens in
// original order.
func rankNgrams(tokens []string, topN int) []string {
	if len(tokens) == 0 {
		return nil
	}

	seen := map[string]*phrase{}
	var order []*phrase
	for _, n := range []int{3, 2} {
		for i := 0; i+n <= len(tokens); i++ {
			text := strings.Join(tokens[i:i+n], " ")
			if p, ok := seen[text]; ok {
				p.count++
				continue
			}
			p := &phrase{text: text, words: n, count: 1, first: i}
			seen[text] = p
			order = append(order, p)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		if order[i].words != order[j].words {
			return order[i].words > order[j].words
		}
		return order[i].first < order[j].first
	})

	var out []string
	used := map[string]bool{}
	for _, p := range order {
		if len(out) == topN {
			return out
		}
		out = append(out, p.text)
		for _, w := range strings.Fields(p.text) {
			used[w] = true
		}
	}

	for _, tok := range tokens {
		if len(out) == topN {
			break
		}
		if used[tok] {
			continue
		}
		used[tok] = true
		out = append(out, tok)
	}
	return out
}
