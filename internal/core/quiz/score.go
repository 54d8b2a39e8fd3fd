package quiz

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"ai-doc-assistant/internal/core/analyzer"
	"ai-doc-assistant/internal/llm"
)

// NormalizeAnswer lowercases and strips everything but letters and digits, so
// casing, whitespace and punctuation never decide correctness.
func NormalizeAnswer(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Evaluate scores a submitted answer deterministically. Choice and true/false
// questions are exact-match after normalization; open answers are scored by
// reference-point token overlap against the open threshold.
func (e *Engine) Evaluate(q Question, submitted string) Result {
	res := Result{
		QuestionID: q.ID,
		Submitted:  submitted,
	}

	switch q.Type {
	case TypeMCQ, TypeTrueFalse:
		if NormalizeAnswer(submitted) == NormalizeAnswer(q.CorrectAnswer) {
			res.IsCorrect = true
			res.Score = 1
		}
	case TypeOpen:
		res.Score = overlapScore(submitted, q.ReferencePoints)
		res.IsCorrect = res.Score >= e.threshold
	}

	if res.IsCorrect {
		res.Feedback = "Correct."
	} else {
		res.Feedback = fmt.Sprintf("Expected: %s", q.CorrectAnswer)
	}
	if q.Explanation != "" {
		res.Feedback += " " + q.Explanation
	}
	return res
}

// overlapScore is the fraction of reference tokens present in the submitted
// answer, clamped to [0, 1]. Empty references score zero.
func overlapScore(submitted string, refPoints []string) float64 {
	refTokens := map[string]struct{}{}
	for _, point := range refPoints {
		for _, tok := range analyzer.Tokenize(point) {
			refTokens[tok] = struct{}{}
		}
	}
	if len(refTokens) == 0 {
		return 0
	}

	seen := map[string]struct{}{}
	hits := 0
	for _, tok := range analyzer.Tokenize(submitted) {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := refTokens[tok]; ok {
			hits++
		}
	}

	score := float64(hits) / float64(len(refTokens))
	if score > 1 {
		score = 1
	}
	return score
}

// OpenFeedback asks the model to review an open answer against the question's
// reference points. It augments the deterministic result and never changes the
// score; model failures propagate so callers can report them.
func (e *Engine) OpenFeedback(ctx context.Context, q Question, submitted, contextText string) (string, error) {
	if q.Type != TypeOpen {
		return "", nil
	}
	out, err := e.gen.Generate(ctx, buildFeedbackPrompt(q, submitted, contextText), llm.Options{
		Temperature:     0.3,
		MaxOutputTokens: 512,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
