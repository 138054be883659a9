package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/service"
)

const version = "1.0.0"

// Handler serves the HTTP API on top of the service
type Handler struct {
	svc    service.Service
	cfg    *config.Config
	logger logger.Logger
}

func NewHandler(svc service.Service, cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{svc: svc, cfg: cfg, logger: log}
}

// NewRouter builds the gin engine with every route registered
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	r.POST("/process-video", h.ProcessVideo)
	r.POST("/process-folder", h.ProcessFolder)
	r.POST("/webhook/process", h.WebhookProcess)

	r.GET("/task/:task_id", h.GetTask)
	r.POST("/task/:task_id/cancel", h.CancelTask)
	r.GET("/tasks", h.ListTasks)
	r.GET("/providers", h.ListProviders)

	r.GET("/files", h.ListFiles)
	r.GET("/files/:filename", h.DownloadFile)

	return r
}
