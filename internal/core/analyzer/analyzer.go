package analyzer

import (
	"sort"
	"strings"
	"unicode"
)

// Keyword is one ranked term. Weight is the term's frequency relative to the
// most frequent term, in (0,1].
type Keyword struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Result carries the ranked keywords plus the full frequency map.
type Result struct {
	Keywords        []Keyword      `json:"keywords"`
	WordFrequencies map[string]int `json:"word_frequencies"`
}

// Analyzer derives keyword rankings from normalized text. Deterministic for
// identical input text and topN.
type Analyzer struct {
	stopwords  map[string]struct{}
	minWordLen int
}

func New(extraStopwords []string, minWordLen int) *Analyzer {
	if minWordLen <= 0 {
		minWordLen = 3
	}
	stop := make(map[string]struct{}, len(englishStopwords)+len(extraStopwords))
	for _, w := range englishStopwords {
		stop[w] = struct{}{}
	}
	for _, w := range extraStopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Analyzer{stopwords: stop, minWordLen: minWordLen}
}

// Analyze tokenizes the text, filters stopwords, counts frequencies and
// returns the top topN terms. An empty document yields an empty result.
func (a *Analyzer) Analyze(text string, topN int) Result {
	res := Result{WordFrequencies: map[string]int{}}
	if text == "" || topN <= 0 {
		return res
	}

	for _, tok := range Tokenize(text) {
		if len([]rune(tok)) < a.minWordLen {
			continue
		}
		if _, skip := a.stopwords[tok]; skip {
			continue
		}
		res.WordFrequencies[tok]++
	}
	if len(res.WordFrequencies) == 0 {
		return res
	}

	terms := make([]string, 0, len(res.WordFrequencies))
	maxCount := 0
	for term, count := range res.WordFrequencies {
		terms = append(terms, term)
		if count > maxCount {
			maxCount = count
		}
	}
	// count desc, then lexicographic, so ranking is stable
	sort.Slice(terms, func(i, j int) bool {
		ci, cj := res.WordFrequencies[terms[i]], res.WordFrequencies[terms[j]]
		if ci != cj {
			return ci > cj
		}
		return terms[i] < terms[j]
	})

	if topN > len(terms) {
		topN = len(terms)
	}
	res.Keywords = make([]Keyword, 0, topN)
	for _, term := range terms[:topN] {
		res.Keywords = append(res.Keywords, Keyword{
			Term:   term,
			Weight: float64(res.WordFrequencies[term]) / float64(maxCount),
		})
	}
	return res
}

// Tokenize lowercases and splits on anything that is not a letter or digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
