package task

import (
	"context"
	"errors"
	"testing"

	"ai-doc-assistant/internal/core/analyzer"
	"ai-doc-assistant/internal/core/document"
	"ai-doc-assistant/internal/core/quiz"
	"ai-doc-assistant/internal/core/session"
	"ai-doc-assistant/internal/llm"
	"ai-doc-assistant/pkg/apperror/status"
)

type fakeGenerator struct {
	out     string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ llm.Options) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.out, f.err
}

func newTestDispatcher(gen llm.Generator) *Dispatcher {
	return NewDispatcher(
		gen,
		quiz.NewEngine(gen, 0.5, 50),
		analyzer.New(nil, 3),
		0,
	)
}

func newTestSession(text string) *session.Session {
	sess := session.New(session.Budget{MaxChars: 15000, DocFloor: 0.7})
	if text != "" {
		sess.SetDocument(&document.Document{Text: text, SourceFormat: document.FormatTXT})
	}
	return sess
}

func TestSummarizeStripsLeadIn(t *testing.T) {
	gen := &fakeGenerator{out: "Here is a summary: The document covers cats."}
	d := newTestDispatcher(gen)
	sess := newTestSession("Cats are mammals. Cats purr.")

	res, err := d.Dispatch(context.Background(), sess, Request{
		Kind:      KindSummarize,
		Summarize: &SummarizeRequest{Length: LengthShort},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary != "The document covers cats." {
		t.Errorf("lead-in not stripped: %q", res.Summary)
	}
}

func TestSummarizeEmptySession(t *testing.T) {
	d := newTestDispatcher(&fakeGenerator{out: "irrelevant"})
	sess := newTestSession("")

	_, err := d.Dispatch(context.Background(), sess, Request{
		Kind:      KindSummarize,
		Summarize: &SummarizeRequest{Length: LengthMedium},
	})
	if !status.Is(err, status.EmptyContext) {
		t.Fatalf("expected EmptyContext, got %v", err)
	}
}

func TestChatAppendsBothTurns(t *testing.T) {
	gen := &fakeGenerator{out: "They are mammals."}
	d := newTestDispatcher(gen)
	sess := newTestSession("Cats are mammals.")

	res, err := d.Dispatch(context.Background(), sess, Request{
		Kind: KindChat,
		Chat: &ChatRequest{Message: "What are cats?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != "They are mammals." {
		t.Errorf("unexpected reply %q", res.Reply)
	}

	history := sess.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(history))
	}
	if history[0].Role != session.RoleUser || history[1].Role != session.RoleAssistant {
		t.Errorf("unexpected roles: %v, %v", history[0].Role, history[1].Role)
	}
}

func TestChatFailureKeepsUserTurn(t *testing.T) {
	modelErr := status.New(status.ModelTimeout, errors.New("deadline exceeded"))
	d := newTestDispatcher(&fakeGenerator{err: modelErr})
	sess := newTestSession("Cats are mammals.")

	_, err := d.Dispatch(context.Background(), sess, Request{
		Kind: KindChat,
		Chat: &ChatRequest{Message: "What are cats?"},
	})
	if !status.Is(err, status.ModelTimeout) {
		t.Fatalf("expected ModelTimeout through the wrap, got %v", err)
	}

	// The user's input is not lost, and no assistant turn is added.
	history := sess.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry after failed call, got %d", len(history))
	}
	if history[0].Role != session.RoleUser || history[0].Content != "What are cats?" {
		t.Errorf("unexpected surviving turn %+v", history[0])
	}
}

func TestQuizGenerateDelegates(t *testing.T) {
	gen := &fakeGenerator{out: `[{"question": "Q?", "options": ["A", "B"], "correct_answer": "A"}]`}
	d := newTestDispatcher(gen)
	sess := newTestSession("Cats are mammals.")

	res, err := d.Dispatch(context.Background(), sess, Request{
		Kind:         KindQuizGenerate,
		QuizGenerate: &QuizGenerateRequest{Spec: quiz.Spec{Type: quiz.TypeMCQ, Count: 1, Difficulty: quiz.DifficultyEasy}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(res.Questions))
	}
}

func TestQuizEvaluateDeterministic(t *testing.T) {
	// No model call happens without WithModelFeedback, so a failing generator
	// must not matter.
	d := newTestDispatcher(&fakeGenerator{err: errors.New("unused")})
	sess := newTestSession("Cats are mammals.")

	q := quiz.Question{Type: quiz.TypeMCQ, Choices: []string{"Paris", "London"}, CorrectAnswer: "Paris"}
	res, err := d.Dispatch(context.Background(), sess, Request{
		Kind:         KindQuizEvaluate,
		QuizEvaluate: &QuizEvaluateRequest{Question: q, Submitted: "paris"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Evaluation.IsCorrect {
		t.Errorf("expected correct evaluation, got %+v", res.Evaluation)
	}
}

func TestAnalyzeTopKeywords(t *testing.T) {
	d := newTestDispatcher(&fakeGenerator{out: "unused"})
	sess := newTestSession("Cats are mammals. Cats purr. Dogs bark.")

	res, err := d.Dispatch(context.Background(), sess, Request{
		Kind:    KindAnalyze,
		Analyze: &AnalyzeRequest{TopN: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kws := res.Analysis.Keywords
	if len(kws) != 2 {
		t.Fatalf("expected 2 keywords, got %v", kws)
	}
	if kws[0].Term != "cats" {
		t.Errorf("expected cats first, got %q", kws[0].Term)
	}
}

func TestAnalyzeModelKeywords(t *testing.T) {
	gen := &fakeGenerator{out: "cats, mammals, purring"}
	d := newTestDispatcher(gen)
	sess := newTestSession("Cats are mammals. Cats purr.")

	res, err := d.Dispatch(context.Background(), sess, Request{
		Kind:    KindAnalyze,
		Analyze: &AnalyzeRequest{TopN: 5, WithModelKeywords: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.ModelKeywords) != 3 {
		t.Fatalf("expected 3 model keywords, got %v", res.ModelKeywords)
	}
	if res.ModelKeywords[0] != "cats" {
		t.Errorf("unexpected first keyword %q", res.ModelKeywords[0])
	}
}

func TestDispatchMissingPayload(t *testing.T) {
	d := newTestDispatcher(&fakeGenerator{})
	sess := newTestSession("text")

	_, err := d.Dispatch(context.Background(), sess, Request{Kind: KindChat})
	if !status.Is(err, status.InvalidStructure) {
		t.Fatalf("expected InvalidStructure, got %v", err)
	}
}

func TestDispatchUnknownKind(t *testing.T) {
	d := newTestDispatcher(&fakeGenerator{})
	sess := newTestSession("text")

	_, err := d.Dispatch(context.Background(), sess, Request{Kind: "translate"})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
