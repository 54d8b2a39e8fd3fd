package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"ai-doc-assistant/internal/database"
	"ai-doc-assistant/internal/database/model"
)

// MessagesCSV writes the persisted chat history of one session as CSV.
func MessagesCSV(ctx context.Context, sessionID string, w io.Writer) error {
	rows, err := database.ListBySession[model.MessageRecord](ctx, sessionID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"role", "content", "created_at"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{
			row.Role,
			row.Content,
			row.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// QuizCSV writes the evaluated quiz answers of one session as CSV.
func QuizCSV(ctx context.Context, sessionID string, w io.Writer) error {
	rows, err := database.ListBySession[model.QuizRecord](ctx, sessionID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"question_type", "prompt", "submitted", "correct", "score", "created_at"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{
			row.QuestionType,
			row.Prompt,
			row.Submitted,
			strconv.FormatBool(row.Correct),
			strconv.FormatFloat(row.Score, 'f', 2, 64),
			row.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
