package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/media"
	"github.com/BruksfildServices01/barber-bot/internal/notify"
)

const maxAdImageBytes = 10 << 20

type ImageStore interface {
	Upload(ctx context.Context, prefix, ext, contentType string, data []byte) (string, error)
}

type AdBroadcaster interface {
	Broadcast(ctx context.Context, photo notify.Photo, caption string) (notify.Report, error)
}

type BroadcastHandler struct {
	images      ImageStore
	broadcaster AdBroadcaster
	audit       *audit.Dispatcher
}

func NewBroadcastHandler(images ImageStore, broadcaster AdBroadcaster, auditDispatcher *audit.Dispatcher) *BroadcastHandler {
	return &BroadcastHandler{images: images, broadcaster: broadcaster, audit: auditDispatcher}
}

// Create takes a multipart "image" and "caption", stores the normalised
// image and sends it to every known user.
func (h *BroadcastHandler) Create(c *gin.Context) {
	if h.images == nil || h.broadcaster == nil {
		httperr.Unavailable(c, "broadcast_not_configured", "Image storage or bot token is not configured.")
		return
	}

	caption := strings.TrimSpace(c.PostForm("caption"))
	if caption == "" {
		httperr.BadRequest(c, "missing_caption", "caption is required.")
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "image is required.")
		return
	}
	if header.Size > maxAdImageBytes {
		httperr.BadRequest(c, "image_too_large", "image must be at most 10 MB.")
		return
	}

	file, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not read image.")
		return
	}
	defer file.Close()

	img, decoded, err := media.Normalize(file)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Use a png, jpeg or webp image.")
			return
		}
		httperr.Internal(c, "image_processing_failed", "Could not process image.")
		return
	}

	ctx := c.Request.Context()

	url, err := h.images.Upload(ctx, "broadcasts", ".jpg", img.ContentType, img.Data)
	if err != nil {
		httperr.Internal(c, "image_upload_failed", "Could not store image.")
		return
	}

	var previewURL string
	if preview, err := media.Preview(decoded); err == nil {
		previewURL, _ = h.images.Upload(ctx, "broadcasts/previews", ".webp", preview.ContentType, preview.Data)
	}

	// the fan-out outlives a dropped admin connection
	report, err := h.broadcaster.Broadcast(context.WithoutCancel(ctx), notify.Photo{URL: url}, caption)
	if err != nil {
		httperr.Internal(c, "broadcast_failed", "Could not list recipients.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID: actorID(c),
		Action:  "broadcast_sent",
		Entity:  "broadcast",
		Metadata: map[string]any{
			"image_url":   url,
			"preview_url": previewURL,
			"caption":     caption,
			"sent":        report.Sent,
			"skipped":     report.Skipped,
			"failed":      report.Failed,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"image_url": url,
		"sent":      report.Sent,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
	})
}
