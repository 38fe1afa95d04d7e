package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/weiawesome/momentroom/internal/api"
	"github.com/weiawesome/momentroom/internal/domain"
	"github.com/weiawesome/momentroom/internal/media"
)

// Multipart part names of a moment.
const (
	PartContent = "content"
	PartImages  = "images"
)

type httpMomentRepository struct {
	client *api.Client
}

// NewHTTPMomentRepository creates a moment repository over the platform API.
func NewHTTPMomentRepository(client *api.Client) MomentRepository {
	return &httpMomentRepository{client: client}
}

// Create uploads a moment as multipart/form-data: one content field and one
// images part per attachment, in order. Attachment bodies are streamed and
// closed.
func (r *httpMomentRepository) Create(ctx context.Context, roomID int64, content string, attachments []*media.Attachment) (*domain.CreateMomentResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMoment(mw, content, attachments))
	}()

	var result domain.CreateMomentResult
	err := r.client.PostMultipart(ctx, fmt.Sprintf("/rooms/%d/moments", roomID), mw.FormDataContentType(), pr, &result)
	// Unblock the writer if the request ended before reading the whole body.
	pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return nil, fmt.Errorf("failed to create moment: %w", err)
	}

	return &result, nil
}

func writeMoment(mw *multipart.Writer, content string, attachments []*media.Attachment) error {
	defer func() {
		for _, a := range attachments {
			a.Body.Close()
		}
	}()

	if err := mw.WriteField(PartContent, content); err != nil {
		return err
	}

	for _, a := range attachments {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, PartImages, escapeQuotes(a.Name)))
		if a.ContentType != "" {
			h.Set("Content-Type", a.ContentType)
		} else {
			h.Set("Content-Type", "application/octet-stream")
		}

		part, err := mw.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, a.Body); err != nil {
			return fmt.Errorf("failed to read %s: %w", a.Name, err)
		}
	}

	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (r *httpMomentRepository) GetByID(ctx context.Context, momentID int64) (*domain.MomentInfo, error) {
	var info domain.MomentInfo
	if err := r.client.Get(ctx, fmt.Sprintf("/moments/%d", momentID), nil, &info); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrMomentNotFound, err)
		}
		return nil, fmt.Errorf("failed to get moment: %w", err)
	}

	return &info, nil
}
