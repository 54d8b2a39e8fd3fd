package export

import (
	"bytes"
	"fmt"

	"ai-doc-assistant/config"
	"ai-doc-assistant/internal/services/export"
	"ai-doc-assistant/pkg/apperror"
	"ai-doc-assistant/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// HandleExport streams a session's persisted history as a CSV attachment.
// Supported kinds: messages, quiz.
func HandleExport(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.BadRequest(config.ModuleExport, c, status.InvalidStructure, "invalid session id")
	}
	kind := c.Params("kind")

	var buf bytes.Buffer
	switch kind {
	case "messages":
		err = export.MessagesCSV(c.Context(), id.String(), &buf)
	case "quiz":
		err = export.QuizCSV(c.Context(), id.String(), &buf)
	default:
		return apperror.BadRequest(config.ModuleExport, c, status.InvalidStructure,
			fmt.Sprintf("unknown export kind %q", kind))
	}
	if err != nil {
		return apperror.InternalError(config.ModuleExport, c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s-%s.csv", kind, id))
	return c.Send(buf.Bytes())
}
