package sessionapi

import (
	"fmt"

	"ai-doc-assistant/config"
	"ai-doc-assistant/internal/services/sessions"
	"ai-doc-assistant/pkg/apperror"
	"ai-doc-assistant/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type Handler struct {
	Registry *sessions.Registry
}

type createResponse struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) HandleCreate(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	sess := h.Registry.Create()

	return apperror.Success(config.ModuleSession, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "Session created",
		TrackingID: trackingID,
		Data:       createResponse{SessionID: sess.ID().String()},
	})
}

func (h *Handler) HandleDelete(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.BadRequest(config.ModuleSession, c, status.InvalidStructure, "invalid session id")
	}

	h.Registry.Remove(id)
	return apperror.Success(config.ModuleSession, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "Session deleted",
		TrackingID: trackingID,
	})
}

func (h *Handler) HandleClearHistory(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.BadRequest(config.ModuleSession, c, status.InvalidStructure, "invalid session id")
	}

	sess, ok := h.Registry.Get(id)
	if !ok {
		return apperror.BadRequest(config.ModuleSession, c, status.InvalidStructure, fmt.Sprintf("unknown session %s", id))
	}
	sess.ClearHistory()

	return apperror.Success(config.ModuleSession, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "History cleared",
		TrackingID: trackingID,
	})
}
