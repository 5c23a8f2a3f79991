// Package gokaru is a client for the Gokaru image and file storage service.
//
// It uploads and deletes origin files stored under a (type, category,
// filename) key, and builds deterministic signed URLs for thumbnails that the
// service generates on demand.
//
// # Basic Usage
//
//	client, err := gokaru.New("http://gokaru.local", signature.NewMurmur("salt"))
//	if err != nil {
//	    return err
//	}
//
//	err = client.Upload(ctx, "/tmp/picture.jpg", gokaru.SourceTypeImage, "avatars", "picture")
//
//	url, err := client.Thumbnail(
//	    gokaru.WithSize(100, 200),
//	    gokaru.WithCast(gokaru.CastResizeInverse),
//	    gokaru.WithCategory("avatars"),
//	    gokaru.WithFilename("picture"),
//	    gokaru.WithExtension("webp"),
//	).Build()
//	// http://gokaru.local/image/{token}/avatars/100/200/8/picture.webp
//
// # Public URLs
//
// Thumbnails and files are usually served through a CDN rather than the origin
// API. Override the public root per source type:
//
//	client.SetPublicURL(gokaru.SourceTypeImage, "https://cdn.example.com/image")
//
// # Verification
//
// Servers that hold the salt can check an incoming thumbnail path:
//
//	req, err := gokaru.ParseThumbnailPath(r.URL.EscapedPath())
//	err = gokaru.VerifyThumbnail(gen, gokaru.SourceTypeImage, req)
//
// # Errors
//
// Validation failures are *ArgumentError or *DomainError and happen before any
// I/O. Local file and transport failures are *RuntimeError wrapping the cause.
// Use errors.Is with ErrInvalidArgument, ErrDomain and ErrRuntime to classify.
package gokaru
