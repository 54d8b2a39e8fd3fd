package task

import (
	"context"
	"fmt"
	"time"

	"ai-doc-assistant/internal/core/analyzer"
	"ai-doc-assistant/internal/core/quiz"
	"ai-doc-assistant/internal/core/session"
	"ai-doc-assistant/internal/llm"
	"ai-doc-assistant/pkg/apperror/status"
)

type Kind string

const (
	KindSummarize    Kind = "summarize"
	KindChat         Kind = "chat"
	KindQuizGenerate Kind = "quiz_generate"
	KindQuizEvaluate Kind = "quiz_evaluate"
	KindAnalyze      Kind = "analyze"
)

type SummaryLength string

const (
	LengthShort  SummaryLength = "short"
	LengthMedium SummaryLength = "medium"
	LengthLong   SummaryLength = "long"
)

type SummarizeRequest struct {
	Length SummaryLength `json:"length"`
	Focus  []string      `json:"focus,omitempty"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type QuizGenerateRequest struct {
	Spec quiz.Spec `json:"spec"`
}

type QuizEvaluateRequest struct {
	Question          quiz.Question `json:"question"`
	Submitted         string        `json:"submitted"`
	WithModelFeedback bool          `json:"with_model_feedback,omitempty"`
}

type AnalyzeRequest struct {
	TopN              int  `json:"top_n,omitempty"`
	WithModelKeywords bool `json:"with_model_keywords,omitempty"`
}

// Request is a tagged union: Kind selects which payload field is consulted.
type Request struct {
	Kind         Kind                 `json:"kind"`
	Summarize    *SummarizeRequest    `json:"summarize,omitempty"`
	Chat         *ChatRequest         `json:"chat,omitempty"`
	QuizGenerate *QuizGenerateRequest `json:"quiz_generate,omitempty"`
	QuizEvaluate *QuizEvaluateRequest `json:"quiz_evaluate,omitempty"`
	Analyze      *AnalyzeRequest      `json:"analyze,omitempty"`
}

type Result struct {
	Kind          Kind             `json:"kind"`
	Summary       string           `json:"summary,omitempty"`
	Reply         string           `json:"reply,omitempty"`
	Questions     []quiz.Question  `json:"questions,omitempty"`
	Evaluation    *quiz.Result     `json:"evaluation,omitempty"`
	Analysis      *analyzer.Result `json:"analysis,omitempty"`
	ModelKeywords []string         `json:"model_keywords,omitempty"`
}

// Dispatcher routes task requests to their implementations. A zero timeout
// leaves the caller's context deadline in charge.
type Dispatcher struct {
	gen     llm.Generator
	quiz    *quiz.Engine
	an      *analyzer.Analyzer
	timeout time.Duration
}

func NewDispatcher(gen llm.Generator, engine *quiz.Engine, an *analyzer.Analyzer, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		gen:     gen,
		quiz:    engine,
		an:      an,
		timeout: timeout,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, sess *session.Session, req Request) (*Result, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	switch req.Kind {
	case KindSummarize:
		if req.Summarize == nil {
			return nil, missingPayload(req.Kind)
		}
		return d.summarize(ctx, sess, *req.Summarize)
	case KindChat:
		if req.Chat == nil {
			return nil, missingPayload(req.Kind)
		}
		return d.chat(ctx, sess, *req.Chat)
	case KindQuizGenerate:
		if req.QuizGenerate == nil {
			return nil, missingPayload(req.Kind)
		}
		return d.quizGenerate(ctx, sess, *req.QuizGenerate)
	case KindQuizEvaluate:
		if req.QuizEvaluate == nil {
			return nil, missingPayload(req.Kind)
		}
		return d.quizEvaluate(ctx, sess, *req.QuizEvaluate)
	case KindAnalyze:
		if req.Analyze == nil {
			return nil, missingPayload(req.Kind)
		}
		return d.analyze(ctx, sess, *req.Analyze)
	default:
		return nil, status.New(status.InvalidStructure, fmt.Errorf("unknown task kind %q", req.Kind))
	}
}

func missingPayload(kind Kind) error {
	return status.New(status.InvalidStructure, fmt.Errorf("task %s: missing payload", kind))
}

// taskErr tags a model failure with the task it came from while keeping the
// status code reachable through Unwrap.
func taskErr(kind Kind, err error) error {
	return fmt.Errorf("task %s: %w", kind, err)
}
