package handlers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	"github.com/BruksfildServices01/barber-bot/internal/notify"
)

type memoryImages struct {
	uploads []string
	err     error
}

func (m *memoryImages) Upload(_ context.Context, prefix, ext, contentType string, _ []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	url := "https://cdn.example.com/" + prefix + "/img" + ext
	m.uploads = append(m.uploads, contentType)
	return url, nil
}

type recordingBroadcaster struct {
	photo   notify.Photo
	caption string
	report  notify.Report
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, photo notify.Photo, caption string) (notify.Report, error) {
	b.photo, b.caption = photo, caption
	return b.report, nil
}

func multipartAd(t *testing.T, caption string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if caption != "" {
		_ = mw.WriteField("caption", caption)
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "ad.png")
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 64, 32))); err != nil {
			t.Fatal(err)
		}
	}
	_ = mw.Close()
	return &body, mw.FormDataContentType()
}

func postAd(r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/broadcasts", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBroadcastUploadsAndSends(t *testing.T) {
	images := &memoryImages{}
	broadcaster := &recordingBroadcaster{report: notify.Report{Sent: 2, Skipped: 1}}
	rec := &auditRecorder{}
	dispatcher := audit.NewDispatcher(rec, nil)

	r := gin.New()
	r.POST("/broadcasts", asAdmin(3), NewBroadcastHandler(images, broadcaster, dispatcher).Create)

	body, ct := multipartAd(t, "Summer discount", true)
	w := postAd(r, body, ct)
	dispatcher.Close()

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if broadcaster.caption != "Summer discount" || !strings.HasSuffix(broadcaster.photo.URL, ".jpg") {
		t.Fatalf("unexpected broadcast %+v %q", broadcaster.photo, broadcaster.caption)
	}
	if len(images.uploads) != 2 || images.uploads[0] != "image/jpeg" || images.uploads[1] != "image/webp" {
		t.Fatalf("unexpected uploads %v", images.uploads)
	}

	got := decode[map[string]any](t, w)
	if got["sent"].(float64) != 2 || got["skipped"].(float64) != 1 {
		t.Fatalf("unexpected body %v", got)
	}

	if len(rec.events) != 1 || rec.events[0].Action != "broadcast_sent" || *rec.events[0].ActorID != 3 {
		t.Fatalf("unexpected audit %+v", rec.events)
	}
}

func TestBroadcastValidation(t *testing.T) {
	broadcaster := &recordingBroadcaster{}
	r := gin.New()
	r.POST("/broadcasts", NewBroadcastHandler(&memoryImages{}, broadcaster, nil).Create)

	body, ct := multipartAd(t, "", true)
	if w := postAd(r, body, ct); w.Code != http.StatusBadRequest {
		t.Fatalf("missing caption: status %d", w.Code)
	}

	body, ct = multipartAd(t, "Sale", false)
	if w := postAd(r, body, ct); w.Code != http.StatusBadRequest {
		t.Fatalf("missing image: status %d", w.Code)
	}

	if broadcaster.caption != "" {
		t.Fatal("nothing must be broadcast on invalid input")
	}
}

func TestBroadcastStorageFailures(t *testing.T) {
	r := gin.New()
	r.POST("/off", NewBroadcastHandler(nil, &recordingBroadcaster{}, nil).Create)
	r.POST("/broadcasts", NewBroadcastHandler(&memoryImages{err: errors.New("denied")}, &recordingBroadcaster{}, nil).Create)

	body, ct := multipartAd(t, "Sale", true)
	req := httptest.NewRequest(http.MethodPost, "/off", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unconfigured storage: status %d", w.Code)
	}

	body, ct = multipartAd(t, "Sale", true)
	if w := postAd(r, body, ct); w.Code != http.StatusInternalServerError {
		t.Fatalf("upload failure: status %d", w.Code)
	}
}
