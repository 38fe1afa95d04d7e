// Package media resolves moment attachment references to readable content.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
)

var (
	ErrNotFound       = errors.New("media not found")
	ErrUnsupportedRef = errors.New("unsupported media reference")
)

// Attachment is an opened media object. The caller must close Body.
type Attachment struct {
	Name        string
	ContentType string
	Size        int64 // -1 if unknown
	Body        io.ReadCloser
}

// Source opens media by key.
type Source interface {
	Open(ctx context.Context, key string) (*Attachment, error)
}

// Resolver dispatches references to a source by scheme: "s3://bucket/key"
// goes to the S3 source, everything else is a local path.
type Resolver struct {
	local Source
	s3    Source
}

// NewResolver creates a resolver. Either source may be nil.
func NewResolver(local, s3 Source) *Resolver {
	return &Resolver{local: local, s3: s3}
}

// Open opens the media a reference points to.
func (r *Resolver) Open(ctx context.Context, ref string) (*Attachment, error) {
	if rest, ok := strings.CutPrefix(ref, "s3://"); ok {
		if r.s3 == nil {
			return nil, fmt.Errorf("%w: %s (s3 not configured)", ErrUnsupportedRef, ref)
		}
		return r.s3.Open(ctx, rest)
	}
	if strings.Contains(ref, "://") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRef, ref)
	}
	if r.local == nil {
		return nil, fmt.Errorf("%w: %s (local media not configured)", ErrUnsupportedRef, ref)
	}
	return r.local.Open(ctx, ref)
}

// detectContentType prefers the extension and falls back to sniffing head.
func detectContentType(name string, head []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return http.DetectContentType(head)
}
