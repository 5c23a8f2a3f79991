package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tendant/gokaru-go/pkg/gokaru"
	"github.com/tendant/gokaru-go/pkg/gokaru/signature"
)

type contextKey string

const thumbnailRequestKey contextKey = "gokaru:thumbnail_request"

// VerifyThumbnail returns middleware that rejects requests whose path does not
// end in a correctly signed thumbnail for source type t. On success the decoded
// request is available through ThumbnailRequestFromContext.
//
// Example:
//
//	r.With(api.VerifyThumbnail(gen, gokaru.SourceTypeImage)).Get("/image/*", serveThumbnail)
func VerifyThumbnail(gen signature.Generator, t gokaru.SourceType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req, err := gokaru.ParseThumbnailPath(r.URL.EscapedPath())
			if err == nil {
				err = gokaru.VerifyThumbnail(gen, t, req)
			}
			if err != nil {
				verifications.WithLabelValues(verificationResult(err)).Inc()
				writeError(w, r, err)
				return
			}
			verifications.WithLabelValues("valid").Inc()

			ctx := context.WithValue(r.Context(), thumbnailRequestKey, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ThumbnailRequestFromContext returns the request verified by VerifyThumbnail,
// or nil when the middleware did not run.
func ThumbnailRequestFromContext(ctx context.Context) *gokaru.ThumbnailRequest {
	if req, ok := ctx.Value(thumbnailRequestKey).(*gokaru.ThumbnailRequest); ok {
		return req
	}
	return nil
}

func verificationResult(err error) string {
	switch {
	case errors.Is(err, gokaru.ErrSignatureMismatch):
		return "mismatch"
	case errors.Is(err, gokaru.ErrInvalidArgument), errors.Is(err, gokaru.ErrDomain):
		return "malformed"
	default:
		slog.Warn("Thumbnail verification failed", "err", err)
		return "error"
	}
}
