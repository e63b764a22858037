package handler

import (
	"context"
	"log/slog"
	"time"

	"noteful/errs"
	"noteful/usecase"
	"noteful/utils"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *repository.NotesRepo.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db           Pinger
	notesService *usecase.NotesService
	startedAt    time.Time
}

func NewHealthHandler(db Pinger, notesService *usecase.NotesService) *HealthHandler {
	return &HealthHandler{
		db:           db,
		notesService: notesService,
		startedAt:    time.Now(),
	}
}

type HealthResponse struct {
	Status        string              `json:"status"`
	Database      string              `json:"database"`
	NoteCount     int64               `json:"note_count"`
	UptimeSeconds int64               `json:"uptime_seconds"`
	Pool          utils.MongoMetrics  `json:"pool"`
	System        utils.SystemMetrics `json:"system"`
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "health check: database ping failed", "error", err)
		utils.Error(c, errs.Wrap(errs.Unavailable, "database unavailable", err))
		return
	}

	count, err := h.notesService.CountNotes(ctx)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, HealthResponse{
		Status:        "ok",
		Database:      "up",
		NoteCount:     count,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Pool:          utils.GetMongoMetrics(),
		System:        utils.GetSystemMetrics(),
	})
}
