package controller

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxUploadFiles    = 10
	maxUploadFileSize = 10 << 20
	uploadFormField   = "files"
	sniffLen          = 512
)

// Upload POST /api/upload, multipart поле files. Принимаются только изображения.
func (h *Handler) Upload(c *gin.Context) {
	if h.uploader == nil {
		respondMessage(c, http.StatusServiceUnavailable, "photo uploads are not configured")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadFiles*maxUploadFileSize+(1<<20))

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, h.logger, service.Validation("multipart form with field %q required", uploadFormField))
		return
	}

	files := form.File[uploadFormField]
	switch {
	case len(files) == 0:
		respondError(c, h.logger, service.Validation("no files uploaded"))
		return
	case len(files) > maxUploadFiles:
		respondError(c, h.logger, service.Validation("at most %d files per upload", maxUploadFiles))
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := h.uploadFile(c, fh)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		urls = append(urls, url)
	}

	h.logger.Info("Photos uploaded",
		zap.Int64("user_id", CurrentUser(c).ID),
		zap.Int("count", len(urls)),
	)

	c.JSON(http.StatusOK, uploadResponse{URLs: urls})
}

func (h *Handler) uploadFile(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxUploadFileSize {
		return "", service.Validation("file %s exceeds %d MiB", fh.Filename, maxUploadFileSize>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", service.Validation("file %s is not an image", fh.Filename)
	}

	return h.uploader.Upload(c.Request.Context(), fh.Filename, contentType, io.MultiReader(bytes.NewReader(head), f))
}
