package quiz

import (
	"context"
	"fmt"
	"strings"

	"ai-doc-assistant/internal/llm"
	"ai-doc-assistant/pkg/apperror/status"

	"github.com/google/uuid"
)

// QuestionType enumerates the supported question shapes.
type QuestionType string

const (
	TypeMCQ       QuestionType = "mcq"
	TypeTrueFalse QuestionType = "truefalse"
	TypeOpen      QuestionType = "open"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Spec describes one generation request.
type Spec struct {
	Type       QuestionType `json:"question_type"`
	Count      int          `json:"count"`
	Difficulty Difficulty   `json:"difficulty"`
}

func (s Spec) Validate() error {
	if s.Count <= 0 {
		return status.New(status.InvalidStructure, fmt.Errorf("question count must be positive, got %d", s.Count))
	}
	switch s.Type {
	case TypeMCQ, TypeTrueFalse, TypeOpen:
	default:
		return status.New(status.InvalidStructure, fmt.Errorf("unknown question type %q", s.Type))
	}
	switch s.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return status.New(status.InvalidStructure, fmt.Errorf("unknown difficulty %q", s.Difficulty))
	}
	return nil
}

// Question is one parsed quiz item. For MCQ the correct answer is always one
// of the choices; for open questions ReferencePoints carries the expected
// key points used for scoring.
type Question struct {
	ID              uuid.UUID    `json:"id"`
	Type            QuestionType `json:"type"`
	Prompt          string       `json:"prompt"`
	Choices         []string     `json:"choices,omitempty"`
	CorrectAnswer   string       `json:"correct_answer"`
	Explanation     string       `json:"explanation,omitempty"`
	ReferencePoints []string     `json:"reference_points,omitempty"`
}

// Result scores one submitted answer. Open-type scoring is a token-overlap
// heuristic thresholded to a bool, best-effort rather than ground truth.
type Result struct {
	QuestionID uuid.UUID `json:"question_id"`
	Submitted  string    `json:"submitted_answer"`
	IsCorrect  bool      `json:"is_correct"`
	Score      float64   `json:"score"`
	Feedback   string    `json:"feedback,omitempty"`
}

// Engine generates question sets from document context and scores answers.
type Engine struct {
	gen          llm.Generator
	threshold    float64
	maxQuestions int
}

func NewEngine(gen llm.Generator, openThreshold float64, maxQuestions int) *Engine {
	if openThreshold <= 0 || openThreshold > 1 {
		openThreshold = 0.5
	}
	if maxQuestions <= 0 {
		maxQuestions = 50
	}
	return &Engine{gen: gen, threshold: openThreshold, maxQuestions: maxQuestions}
}

// Generate asks the model for spec.Count questions over the given context and
// parses the reply. Unparseable items are skipped, so the result may be
// shorter than requested; an entirely unparseable reply is a failure.
func (e *Engine) Generate(ctx context.Context, contextText string, spec Spec) ([]Question, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(contextText) == "" {
		return nil, status.New(status.EmptyContext, fmt.Errorf("no document context for quiz generation"))
	}
	if spec.Count > e.maxQuestions {
		spec.Count = e.maxQuestions
	}

	raw, err := e.gen.Generate(ctx, buildGenerationPrompt(contextText, spec), llm.Options{
		Temperature:     0.4,
		MaxOutputTokens: 3072,
	})
	if err != nil {
		return nil, err
	}

	questions := Parse(raw, spec.Type)
	if len(questions) == 0 {
		return nil, status.New(status.QuizParseFailed, fmt.Errorf("no parseable questions in model output"))
	}
	if len(questions) > spec.Count {
		questions = questions[:spec.Count]
	}
	return questions, nil
}
