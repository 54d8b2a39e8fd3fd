package quiz

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Parse extracts questions from raw model output. The JSON-list convention is
// tried first, then a numbered-item text convention. Items that fail to parse
// are skipped individually; callers decide whether zero parsed is fatal.
func Parse(raw string, qtype QuestionType) []Question {
	if qs := parseJSONList(raw, qtype); len(qs) > 0 {
		return qs
	}
	return parseNumbered(raw, qtype)
}

// rawItem is the per-question JSON shape requested from the model.
type rawItem struct {
	Question          string          `json:"question"`
	Options           []string        `json:"options"`
	CorrectAnswer     json.RawMessage `json:"correct_answer"`
	IdealAnswerPoints []string        `json:"ideal_answer_points"`
	Explanation       string          `json:"explanation"`
}

func parseJSONList(raw string, qtype QuestionType) []Question {
	text := stripFences(raw)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return nil
	}

	// Decode the list as raw messages so one malformed item does not fail
	// the whole batch.
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text[start:end+1]), &items); err != nil {
		return nil
	}

	var out []Question
	for _, msg := range items {
		var item rawItem
		if err := json.Unmarshal(msg, &item); err != nil {
			continue
		}
		if q, ok := buildQuestion(item, qtype); ok {
			out = append(out, q)
		}
	}
	return out
}

func buildQuestion(item rawItem, qtype QuestionType) (Question, bool) {
	prompt := strings.TrimSpace(item.Question)
	if prompt == "" {
		return Question{}, false
	}
	q := Question{
		ID:          uuid.New(),
		Type:        qtype,
		Prompt:      prompt,
		Explanation: strings.TrimSpace(item.Explanation),
	}

	switch qtype {
	case TypeMCQ:
		if len(item.Options) < 2 {
			return Question{}, false
		}
		var answer string
		if err := json.Unmarshal(item.CorrectAnswer, &answer); err != nil {
			return Question{}, false
		}
		matched, ok := matchChoice(answer, item.Options)
		if !ok {
			return Question{}, false
		}
		q.Choices = item.Options
		q.CorrectAnswer = matched
	case TypeTrueFalse:
		answer, ok := decodeBoolAnswer(item.CorrectAnswer)
		if !ok {
			return Question{}, false
		}
		q.CorrectAnswer = answer
	case TypeOpen:
		points := trimAll(item.IdealAnswerPoints)
		if len(points) == 0 {
			var answer string
			if err := json.Unmarshal(item.CorrectAnswer, &answer); err != nil || strings.TrimSpace(answer) == "" {
				return Question{}, false
			}
			points = []string{strings.TrimSpace(answer)}
		}
		q.ReferencePoints = points
		q.CorrectAnswer = strings.Join(points, "; ")
	default:
		return Question{}, false
	}
	return q, true
}

// matchChoice resolves a stated answer to one of the options: exact first,
// then normalized text, then a bare A/B/C letter. The returned string is the
// option text itself, which keeps the answer-in-choices invariant.
func matchChoice(answer string, options []string) (string, bool) {
	answer = strings.TrimSpace(answer)
	for _, opt := range options {
		if answer == opt {
			return opt, true
		}
	}
	norm := NormalizeAnswer(answer)
	for _, opt := range options {
		if norm != "" && norm == NormalizeAnswer(opt) {
			return opt, true
		}
	}
	if len(answer) == 1 {
		c := answer[0] | 0x20 // lowercase
		if c >= 'a' && int(c-'a') < len(options) {
			return options[c-'a'], true
		}
	}
	return "", false
}

func decodeBoolAnswer(msg json.RawMessage) (string, bool) {
	var b bool
	if err := json.Unmarshal(msg, &b); err == nil {
		if b {
			return "true", true
		}
		return "false", true
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			return "true", true
		case "false":
			return "false", true
		}
	}
	return "", false
}

// convention holds the text-format markers so the fallback parser can be
// adjusted without touching scoring.
type convention struct {
	item   *regexp.Regexp
	choice *regexp.Regexp
	answer *regexp.Regexp
}

var defaultConvention = convention{
	item:   regexp.MustCompile(`^\s*\d+[.)]\s*(.*)$`),
	choice: regexp.MustCompile(`^\s*([A-Fa-f])[.)]\s+(.+)$`),
	answer: regexp.MustCompile(`^\s*[Aa]nswer\s*[:\-]\s*(.+)$`),
}

type textBlock struct {
	prompt  []string
	choices []string
	answer  string
}

func parseNumbered(raw string, qtype QuestionType) []Question {
	conv := defaultConvention

	var blocks []textBlock
	var cur *textBlock
	for _, line := range strings.Split(raw, "\n") {
		if m := conv.item.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, textBlock{})
			cur = &blocks[len(blocks)-1]
			if s := strings.TrimSpace(m[1]); s != "" {
				cur.prompt = append(cur.prompt, s)
			}
			continue
		}
		if cur == nil {
			continue
		}
		if m := conv.answer.FindStringSubmatch(line); m != nil {
			cur.answer = strings.TrimSpace(m[1])
			continue
		}
		if m := conv.choice.FindStringSubmatch(line); m != nil {
			cur.choices = append(cur.choices, strings.TrimSpace(m[2]))
			continue
		}
		if s := strings.TrimSpace(line); s != "" && cur.answer == "" && len(cur.choices) == 0 {
			cur.prompt = append(cur.prompt, s)
		}
	}

	var out []Question
	for _, b := range blocks {
		if q, ok := buildTextQuestion(b, qtype); ok {
			out = append(out, q)
		}
	}
	return out
}

func buildTextQuestion(b textBlock, qtype QuestionType) (Question, bool) {
	prompt := strings.TrimSpace(strings.Join(b.prompt, " "))
	if prompt == "" || b.answer == "" {
		return Question{}, false
	}
	q := Question{
		ID:     uuid.New(),
		Type:   qtype,
		Prompt: prompt,
	}

	switch qtype {
	case TypeMCQ:
		if len(b.choices) < 2 {
			return Question{}, false
		}
		matched, ok := matchChoice(b.answer, b.choices)
		if !ok {
			return Question{}, false
		}
		q.Choices = b.choices
		q.CorrectAnswer = matched
	case TypeTrueFalse:
		switch NormalizeAnswer(b.answer) {
		case "true":
			q.CorrectAnswer = "true"
		case "false":
			q.CorrectAnswer = "false"
		default:
			return Question{}, false
		}
	case TypeOpen:
		points := trimAll(strings.Split(b.answer, ";"))
		if len(points) == 0 {
			return Question{}, false
		}
		q.ReferencePoints = points
		q.CorrectAnswer = strings.Join(points, "; ")
	default:
		return Question{}, false
	}
	return q, true
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
