package httpapi

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type fileInfo struct {
	Filename   string `json:"filename"`
	SizeBytes  int64  `json:"size_bytes"`
	ModifiedAt string `json:"modified_at"`
}

// ListFiles lists generated summary artifacts
func (h *Handler) ListFiles(c *gin.Context) {
	entries, err := os.ReadDir(h.cfg.Paths.Output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		h.logger.Error(c.Request.Context(), "List output files: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read output folder"})
		return
	}

	files := []fileInfo{}
	for _, e := range entries {
		if e.IsDir() || !isArtifact(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			Filename:   e.Name(),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime().UTC().Format(time.RFC3339),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })

	c.JSON(http.StatusOK, gin.H{
		"files": files,
		"total": len(files),
	})
}

// DownloadFile serves one artifact from the output folder
func (h *Handler) DownloadFile(c *gin.Context) {
	name := c.Param("filename")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || !isArtifact(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}

	path := filepath.Join(h.cfg.Paths.Output, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.FileAttachment(path, name)
}

func isArtifact(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".txt" || ext == ".docx"
}
