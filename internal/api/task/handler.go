package task

import (
	"encoding/json"
	"time"

	"ai-doc-assistant/config"
	coretask "ai-doc-assistant/internal/core/task"
	"ai-doc-assistant/internal/database"
	"ai-doc-assistant/internal/database/model"
	"ai-doc-assistant/internal/services/sessions"
	"ai-doc-assistant/pkg/apperror"
	"ai-doc-assistant/pkg/apperror/status"
	"ai-doc-assistant/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type Handler struct {
	Registry   *sessions.Registry
	Dispatcher *coretask.Dispatcher
}

// HandleTask runs one task against a session. A session accepts one task at a
// time; concurrent submissions get a conflict.
func (h *Handler) HandleTask(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.BadRequest(config.ModuleTask, c, status.InvalidStructure, "invalid session id")
	}

	var req coretask.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleTask, c, status.InvalidStructure, "invalid request body")
	}

	sess, release, err := h.Registry.Acquire(id)
	if err != nil {
		if err == sessions.ErrBusy {
			return apperror.WriteError(config.ModuleTask, c, fiber.StatusConflict, status.Internal, err.Error())
		}
		return apperror.BadRequest(config.ModuleTask, c, status.InvalidStructure, err.Error())
	}
	defer release()

	res, err := h.Dispatcher.Dispatch(c.Context(), sess, req)
	if err != nil {
		return apperror.FromError(config.ModuleTask, c, err)
	}

	h.persist(c, id.String(), req, res)

	return apperror.Success(config.ModuleTask, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "Task completed",
		TrackingID: trackingID,
		Data:       res,
	})
}

// persist records completed chat turns and quiz evaluations. Failures are
// logged, not surfaced: the task already succeeded.
func (h *Handler) persist(c fiber.Ctx, sessionID string, req coretask.Request, res *coretask.Result) {
	now := time.Now()

	switch res.Kind {
	case coretask.KindChat:
		rows := []model.MessageRecord{
			{SessionID: sessionID, Role: "user", Content: req.Chat.Message, CreatedAt: now},
			{SessionID: sessionID, Role: "assistant", Content: res.Reply, CreatedAt: now},
		}
		for i := range rows {
			if err := database.CreateEntity(c.Context(), &rows[i]); err != nil {
				logger.Error(err, "task: failed to persist message")
				return
			}
		}
	case coretask.KindQuizEvaluate:
		row := model.QuizRecord{
			SessionID:    sessionID,
			QuestionType: string(req.QuizEvaluate.Question.Type),
			Prompt:       req.QuizEvaluate.Question.Prompt,
			Submitted:    req.QuizEvaluate.Submitted,
			Correct:      res.Evaluation.IsCorrect,
			Score:        res.Evaluation.Score,
			CreatedAt:    now,
		}
		if err := database.CreateEntity(c.Context(), &row); err != nil {
			logger.Error(err, "task: failed to persist quiz record")
		}
	}
}
