package moderation

import (
	"context"
	"io"

	"arts-market/internal/apperr"
)

// Screener checks an uploaded image before it is accepted. The concrete
// vision-API client lives outside this repo; the core only needs the verdict.
type Screener interface {
	Screen(ctx context.Context, image io.Reader) error
}

// Permissive accepts every image. Used when no screener is configured.
type Permissive struct{}

func (Permissive) Screen(ctx context.Context, image io.Reader) error {
	return nil
}

// Reject is the error a Screener implementation returns for explicit content.
func Reject() error {
	return apperr.New(apperr.Forbidden, "Image contains explicit or harmful content")
}
