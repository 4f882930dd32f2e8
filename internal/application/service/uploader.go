package service

import (
	"context"
	"io"
)

// Uploader stores profile photos and hands back delivery references. The
// rest of the system only keeps the returned strings, it never interprets
// them.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
	// WatermarkedURL builds the delivery URL that carries the service
	// watermark overlay for a stored photo.
	WatermarkedURL(publicID string) (string, error)
}
