package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"ai-doc-assistant/config"
	"ai-doc-assistant/internal/core/document"
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
	Registry *sessions.Registry
}

type uploadResponse struct {
	DocumentID   string            `json:"document_id"`
	SourceFormat string            `json:"source_format"`
	Chars        int               `json:"chars"`
	Metadata     map[string]string `json:"metadata"`
}

// HandleUpload receives a multipart file, normalizes it and installs it as the
// session's active document. The previous document and chat history are
// replaced.
func (h *Handler) HandleUpload(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidStructure, "invalid session id")
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return apperror.BadRequest(config.ModuleUpload, c, status.EmptyDocument, "file is required")
	}
	maxBytes := int64(config.Cfg.Server.MaxUploadMB) * 1024 * 1024
	if fh.Size > maxBytes {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidStructure,
			fmt.Sprintf("file exceeds %d MB limit", config.Cfg.Server.MaxUploadMB))
	}

	format, err := document.ParseFormat(filepath.Ext(fh.Filename))
	if err != nil {
		return apperror.FromError(config.ModuleUpload, c, err)
	}

	file, err := fh.Open()
	if err != nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidStructure, "cannot open file")
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}
	if int64(len(raw)) > maxBytes {
		return apperror.BadRequest(config.ModuleUpload, c, status.InvalidStructure,
			fmt.Sprintf("file exceeds %d MB limit", config.Cfg.Server.MaxUploadMB))
	}

	doc, err := document.Normalize(raw, format)
	if err != nil {
		return apperror.FromError(config.ModuleUpload, c, err)
	}

	sess, release, err := h.Registry.Acquire(id)
	if err != nil {
		return sessionError(c, err)
	}
	defer release()
	sess.SetDocument(doc)

	record := model.DocumentRecord{
		ID:           uuid.New().String(),
		SessionID:    id.String(),
		Name:         fh.Filename,
		SourceFormat: string(doc.SourceFormat),
		Chars:        len([]rune(doc.Text)),
		CreatedAt:    time.Now(),
	}
	if err := database.CreateEntity(c.Context(), &record); err != nil {
		logger.Error(err, "upload: failed to persist document record")
	}

	// Best effort raw archive when a bucket is configured.
	if strings.TrimSpace(config.Cfg.S3.Bucket) != "" {
		if err := archiveToS3(c.Context(), raw, fh.Filename); err != nil {
			logger.Error(err, "upload: failed to archive raw file")
		}
	}

	return apperror.Success(config.ModuleUpload, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "Document loaded",
		TrackingID: trackingID,
		Data: uploadResponse{
			DocumentID:   record.ID,
			SourceFormat: string(doc.SourceFormat),
			Chars:        record.Chars,
			Metadata:     doc.Metadata,
		},
	})
}

func sessionError(c fiber.Ctx, err error) error {
	if err == sessions.ErrBusy {
		return apperror.WriteError(config.ModuleSession, c, fiber.StatusConflict, status.Internal, err.Error())
	}
	return apperror.BadRequest(config.ModuleSession, c, status.InvalidStructure, err.Error())
}

func contentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
