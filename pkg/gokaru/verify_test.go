package gokaru

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/gokaru-go/pkg/gokaru/signature"
)

func TestParseThumbnailPath(t *testing.T) {
	req, err := ParseThumbnailPath("/image/18tom5f/category/100/200/8/picture.jpg?v=2")
	require.NoError(t, err)
	assert.Equal(t, "18tom5f", req.Token)
	assert.Equal(t, ThumbnailParams{
		Category:  "category",
		Filename:  "picture",
		Extension: "jpg",
		Width:     100,
		Height:    200,
		Cast:      CastResizeInverse,
	}, req.ThumbnailParams)
}

func TestParseThumbnailPath_Errors(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		field string
	}{
		{"too short", "/18tom5f/category/100/200/picture.jpg", "thumbnail path"},
		{"non numeric width", "/t/category/abc/200/8/picture.jpg", "width"},
		{"signed height", "/t/category/100/+200/8/picture.jpg", "height"},
		{"negative cast", "/t/category/100/200/-8/picture.jpg", "cast"},
		{"leading zero", "/t/category/0100/200/8/picture.jpg", "width"},
		{"no extension", "/t/category/100/200/8/picture", "extension"},
		{"empty filename", "/t/category/100/200/8/.jpg", "filename"},
		{"bad escape", "/t/category/100/200/8/pic%zz.jpg", "filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseThumbnailPath(tt.path)
			requireArgumentField(t, err, tt.field)
		})
	}
}

func TestVerifyThumbnail_RoundTrip(t *testing.T) {
	for _, gen := range []signature.Generator{signature.NewMurmur(testSalt), signature.NewMD5(testSalt)} {
		b, err := NewThumbnailURLBuilder("https://cdn.example.com/img", SourceTypeImage, gen)
		require.NoError(t, err)
		b.Category("my photos").Filename("summer.2024").Extension("webp").Width(320).Cast(CastResizeInverse | CastTrim)

		raw, err := b.Build()
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)

		req, err := ParseThumbnailPath(u.EscapedPath())
		require.NoError(t, err)
		assert.Equal(t, b.Params(), req.ThumbnailParams)
		assert.NoError(t, VerifyThumbnail(gen, SourceTypeImage, req))
	}
}

func TestVerifyThumbnail_Mismatch(t *testing.T) {
	gen := signature.NewMurmur(testSalt)

	req, err := ParseThumbnailPath("/image/18tom5f/category/100/200/8/picture.jpg")
	require.NoError(t, err)
	require.NoError(t, VerifyThumbnail(gen, SourceTypeImage, req))

	tampered, err := ParseThumbnailPath("/image/18tom5f/category/999/200/8/picture.jpg")
	require.NoError(t, err)
	assert.ErrorIs(t, VerifyThumbnail(gen, SourceTypeImage, tampered), ErrSignatureMismatch)

	assert.ErrorIs(t, VerifyThumbnail(signature.NewMurmur("other"), SourceTypeImage, req), ErrSignatureMismatch)
	assert.ErrorIs(t, VerifyThumbnail(gen, SourceTypeFile, req), ErrSignatureMismatch)
	assert.ErrorIs(t, VerifyThumbnail(gen, "video", req), ErrDomain)
	assert.ErrorIs(t, VerifyThumbnail(nil, SourceTypeImage, req), ErrInvalidArgument)
}
