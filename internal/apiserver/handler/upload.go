package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/amoylab/rentboard/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartOverhead covers form boundaries and part headers on top of the file bytes
const multipartOverhead = 1 << 20

// UploadImages stores the files of the "images" field and returns their references
func (h *Handler) UploadImages(c *gin.Context) {
	if h.images == nil {
		h.fail(c, errors.New("image storage is not configured"))
		return
	}

	// Cap the whole body before parsing the form
	limit := int64(h.upload.MaxFiles)*h.upload.MaxFileSize + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			i18n.Error(i18n.ErrInvalidPayload).WithParam("reason", "request body too large").Send(c)
			return
		}
		i18n.RespondWithError(c, i18n.ErrNoFilesUploaded)
		return
	}

	// Reject the batch before any file is written
	files := form.File["images"]
	switch {
	case len(files) == 0:
		i18n.RespondWithError(c, i18n.ErrNoFilesUploaded)
		return
	case len(files) > h.upload.MaxFiles:
		i18n.Error(i18n.ErrTooManyFiles).WithParam("max", h.upload.MaxFiles).Send(c)
		return
	}
	for _, fh := range files {
		if fh.Size > h.upload.MaxFileSize {
			i18n.Error(i18n.ErrFileTooLarge).
				WithParams(map[string]interface{}{"name": fh.Filename, "max": h.upload.MaxFileSize}).
				Send(c)
			return
		}
	}

	ctx := c.Request.Context()
	now := h.now()
	urls := make([]string, 0, len(files))
	names := make([]string, 0, len(files))
	for i, fh := range files {
		// one millisecond apart so that same-named files in a request stay distinct
		name := storage.ObjectName(fh.Filename, now.Add(time.Duration(i)*time.Millisecond))
		url, err := h.saveImage(c, fh, name)
		if err != nil {
			// Roll back the files already stored for this request
			h.logger.Error("failed to store image", zap.String("name", name), zap.Error(err))
			for _, saved := range names {
				if derr := h.images.Delete(ctx, saved); derr != nil {
					h.logger.Warn("failed to remove image after aborted upload", zap.String("name", saved), zap.Error(derr))
				}
			}
			h.metrics.ImagesUploaded(len(files), false)
			i18n.RespondWithError(c, i18n.ErrUploadFailed)
			return
		}
		names = append(names, name)
		urls = append(urls, url)
	}

	h.metrics.ImagesUploaded(len(urls), true)
	i18n.Success().With("imageUrls", urls).Send(c)
}

func (h *Handler) saveImage(c *gin.Context, fh *multipart.FileHeader, name string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.images.Save(c.Request.Context(), name, fh.Header.Get("Content-Type"), f)
}
