package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/clipdigest/internal/service"
)

type processVideoRequest struct {
	VideoPath     string   `json:"video_path"`
	VideoPaths    []string `json:"video_paths"`
	CallbackURL   string   `json:"callback_url" binding:"omitempty,url"`
	Transcription string   `json:"transcription_provider"`
	Summarization string   `json:"summarization_provider"`
}

type processFolderRequest struct {
	FolderPath    string `json:"folder_path"`
	CallbackURL   string `json:"callback_url" binding:"omitempty,url"`
	Transcription string `json:"transcription_provider"`
	Summarization string `json:"summarization_provider"`
}

type webhookForm struct {
	VideoPath   string `form:"video_path"`
	FolderPath  string `form:"folder_path"`
	CallbackURL string `form:"callback_url" binding:"omitempty,url"`
}

type processingResponse struct {
	TaskID    string `json:"task_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ProcessVideo queues one video, or a batch when video_paths is given
func (h *Handler) ProcessVideo(c *gin.Context) {
	var req processVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := req.VideoPaths
	if req.VideoPath != "" {
		items = append([]string{req.VideoPath}, items...)
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_path is required"})
		return
	}

	h.submit(c, service.Request{
		Items:         items,
		CallbackURL:   req.CallbackURL,
		Transcription: req.Transcription,
		Summarization: req.Summarization,
	}, "Processing started")
}

// ProcessFolder queues every supported file of a folder, defaulting to paths.input
func (h *Handler) ProcessFolder(c *gin.Context) {
	var req processFolderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	folder := req.FolderPath
	if folder == "" {
		folder = h.cfg.Paths.Input
	}

	h.submit(c, service.Request{
		Folder:        folder,
		CallbackURL:   req.CallbackURL,
		Transcription: req.Transcription,
		Summarization: req.Summarization,
	}, "Folder processing started")
}

// WebhookProcess accepts form posts from external automation
func (h *Handler) WebhookProcess(c *gin.Context) {
	var form webhookForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := service.Request{CallbackURL: form.CallbackURL}
	switch {
	case form.VideoPath != "":
		req.Items = []string{form.VideoPath}
	case form.FolderPath != "":
		req.Folder = form.FolderPath
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_path or folder_path is required"})
		return
	}

	h.submit(c, req, "Processing started via webhook")
}

func (h *Handler) submit(c *gin.Context, req service.Request, message string) {
	id, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrClosed):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			h.logger.Error(c.Request.Context(), "Submit failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit task"})
		}
		return
	}

	task, err := h.svc.Status(id)
	status := "queued"
	if err == nil {
		status = string(task.Status)
	}

	c.JSON(http.StatusAccepted, processingResponse{
		TaskID:    id,
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
