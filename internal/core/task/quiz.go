package task

import (
	"context"

	"ai-doc-assistant/internal/core/session"
)

func (d *Dispatcher) quizGenerate(ctx context.Context, sess *session.Session, req QuizGenerateRequest) (*Result, error) {
	qs, err := d.quiz.Generate(ctx, sess.BuildContext(false), req.Spec)
	if err != nil {
		return nil, taskErr(KindQuizGenerate, err)
	}
	return &Result{
		Kind:      KindQuizGenerate,
		Questions: qs,
	}, nil
}

func (d *Dispatcher) quizEvaluate(ctx context.Context, sess *session.Session, req QuizEvaluateRequest) (*Result, error) {
	res := d.quiz.Evaluate(req.Question, req.Submitted)

	if req.WithModelFeedback {
		feedback, err := d.quiz.OpenFeedback(ctx, req.Question, req.Submitted, sess.BuildContext(false))
		if err != nil {
			return nil, taskErr(KindQuizEvaluate, err)
		}
		if feedback != "" {
			res.Feedback = feedback
		}
	}

	return &Result{
		Kind:       KindQuizEvaluate,
		Evaluation: &res,
	}, nil
}
