// Package api exposes URL signing and thumbnail verification over HTTP, for
// services that do not link the client library directly.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/gokaru-go/pkg/gokaru"
)

// Handler serves signed URLs for one client configuration.
type Handler struct {
	client *gokaru.Client
}

func NewHandler(client *gokaru.Client) *Handler {
	return &Handler{client: client}
}

// Routes returns the router for the signing endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/thumbnail", h.Thumbnail)
	r.Get("/origin/{type}/{category}/{filename}", h.Origin)
	r.Get("/file/{category}/{filename}", h.File)
	r.Get("/verify/{type}/*", h.Verify)
	return r
}

// URLResponse carries a single rendered URL
type URLResponse struct {
	URL string `json:"url"`
}

// ThumbnailResponse describes a signed thumbnail URL and its parameters
type ThumbnailResponse struct {
	URL       string `json:"url,omitempty"`
	Token     string `json:"token"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	Filename  string `json:"filename"`
	Extension string `json:"extension"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Cast      int    `json:"cast"`
	CastFlags string `json:"cast_flags"`
}

func newThumbnailResponse(t gokaru.SourceType, token, url string, p gokaru.ThumbnailParams) ThumbnailResponse {
	return ThumbnailResponse{
		URL:       url,
		Token:     token,
		Type:      string(t),
		Category:  p.Category,
		Filename:  p.Filename,
		Extension: p.Extension,
		Width:     p.Width,
		Height:    p.Height,
		Cast:      int(p.Cast),
		CastFlags: p.Cast.String(),
	}
}

// Thumbnail signs an image thumbnail URL from query parameters:
// category, filename, extension, width, height and cast. cast accepts a
// decimal value or flag names such as "resize_inverse,opaque_background".
func (h *Handler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	width, err := intParam(q.Get("width"), "width")
	if err != nil {
		writeError(w, r, err)
		return
	}
	height, err := intParam(q.Get("height"), "height")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cast, err := gokaru.ParseCast(q.Get("cast"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	b := h.client.Thumbnail(
		gokaru.WithCategory(q.Get("category")),
		gokaru.WithFilename(q.Get("filename")),
		gokaru.WithExtension(q.Get("extension")),
		gokaru.WithSize(width, height),
		gokaru.WithCast(cast),
	)
	url, err := b.Build()
	if err != nil {
		writeError(w, r, err)
		return
	}
	token, _ := b.Token()
	signedURLs.WithLabelValues("thumbnail").Inc()

	render.JSON(w, r, newThumbnailResponse(b.SourceType(), token, url, b.Params()))
}

// Origin renders the origin API URL of a stored file
func (h *Handler) Origin(w http.ResponseWriter, r *http.Request) {
	url, err := h.client.Origin(
		gokaru.SourceType(chi.URLParam(r, "type")),
		chi.URLParam(r, "category"),
		chi.URLParam(r, "filename"),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	signedURLs.WithLabelValues("origin").Inc()
	render.JSON(w, r, URLResponse{URL: url})
}

// File renders the public URL of a stored file
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	url, err := h.client.File(chi.URLParam(r, "category"), chi.URLParam(r, "filename"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	signedURLs.WithLabelValues("file").Inc()
	render.JSON(w, r, URLResponse{URL: url})
}

// Verify checks a thumbnail path /verify/{type}/{token}/{category}/{w}/{h}/{cast}/{file}
// and reports its decoded parameters.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	t := gokaru.SourceType(chi.URLParam(r, "type"))
	verifier := VerifyThumbnail(h.client.Signature(), t)
	verifier(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := ThumbnailRequestFromContext(r.Context())
		render.JSON(w, r, newThumbnailResponse(t, req.Token, "", req.ThumbnailParams))
	})).ServeHTTP(w, r)
}

func intParam(s, field string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		slog.Debug("Invalid integer parameter", "field", field, "value", s)
		return 0, &gokaru.ArgumentError{Field: field, Reason: "is not a number"}
	}
	return n, nil
}
