package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/clipdigest/internal/task"
)

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":                "Video Summarization API",
		"version":                version,
		"status":                 "running",
		"transcription_provider": h.cfg.Pipeline.Transcription,
		"summarization_provider": h.cfg.Pipeline.Summarization,
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"config": gin.H{
			"input_folder":           h.cfg.Paths.Input,
			"output_folder":          h.cfg.Paths.Output,
			"supported_formats":      h.cfg.Pipeline.SupportedFormats,
			"max_file_size_mb":       h.cfg.Pipeline.MaxFileSizeMB,
			"max_concurrent":         h.cfg.Performance.MaxConcurrent,
			"transcription_provider": h.cfg.Pipeline.Transcription,
			"summarization_provider": h.cfg.Pipeline.Summarization,
		},
	})
}

func (h *Handler) GetTask(c *gin.Context) {
	t, err := h.svc.Status(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTasks(c *gin.Context) {
	tasks := h.svc.ListTasks()
	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

func (h *Handler) CancelTask(c *gin.Context) {
	id := c.Param("task_id")
	err := h.svc.Cancel(id)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, gin.H{"task_id": id, "status": "cancel_requested"})
	case errors.Is(err, task.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, task.ErrTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": "task already finished"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"providers": h.svc.Providers(),
		"defaults": gin.H{
			"transcription": h.cfg.Pipeline.Transcription,
			"summarization": h.cfg.Pipeline.Summarization,
		},
	})
}
