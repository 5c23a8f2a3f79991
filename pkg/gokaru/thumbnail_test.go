package gokaru

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/gokaru-go/pkg/gokaru/signature"
)

const (
	testSalt     = "salt"
	testImageURL = "http://gokaru.local/image"
)

func defaultBuilder(t *testing.T) *ThumbnailURLBuilder {
	t.Helper()
	b, err := NewThumbnailURLBuilder(testImageURL, SourceTypeImage, signature.NewMurmur(testSalt))
	require.NoError(t, err)
	return b
}

func filledBuilder(t *testing.T) *ThumbnailURLBuilder {
	t.Helper()
	return defaultBuilder(t).
		Category("category").
		Filename("picture").
		Extension("jpg").
		Width(100).
		Height(200).
		Cast(CastResizeInverse)
}

func requireArgumentField(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr), "expected *ArgumentError, got %T", err)
	assert.Equal(t, field, argErr.Field)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewThumbnailURLBuilder(t *testing.T) {
	gen := signature.NewMurmur(testSalt)

	b, err := NewThumbnailURLBuilder(testImageURL+"//", SourceTypeImage, gen)
	require.NoError(t, err)
	assert.Equal(t, testImageURL, b.PublicURL())
	assert.Equal(t, SourceTypeImage, b.SourceType())
	assert.Equal(t, ThumbnailParams{}, b.Params())

	_, err = NewThumbnailURLBuilder("", SourceTypeImage, gen)
	requireArgumentField(t, err, "public url")

	_, err = NewThumbnailURLBuilder(testImageURL, "", gen)
	requireArgumentField(t, err, "source type")

	_, err = NewThumbnailURLBuilder(testImageURL, "video", gen)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = NewThumbnailURLBuilder(testImageURL, SourceTypeImage, nil)
	requireArgumentField(t, err, "signature generator")
}

func TestThumbnailURLBuilder_Build(t *testing.T) {
	b := filledBuilder(t)

	u, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "http://gokaru.local/image/18tom5f/category/100/200/8/picture.jpg", u)
	assert.Equal(t, u, b.String())

	again, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, u, again, "finalization must be idempotent")

	token, err := b.Token()
	require.NoError(t, err)
	assert.Equal(t, "18tom5f", token)
}

func TestThumbnailURLBuilder_Mutations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ThumbnailURLBuilder)
		want   string
	}{
		{"filename", func(b *ThumbnailURLBuilder) { b.Filename("another_filename") },
			"http://gokaru.local/image/2dp9g0d/category/100/200/8/another_filename.jpg"},
		{"extension", func(b *ThumbnailURLBuilder) { b.Extension("webp") },
			"http://gokaru.local/image/30s3bt3/category/100/200/8/picture.webp"},
		{"cast accumulates", func(b *ThumbnailURLBuilder) { b.Cast(CastOpaqueBackground) },
			"http://gokaru.local/image/10hn4n0/category/100/200/72/picture.jpg"},
		{"cast zero clears", func(b *ThumbnailURLBuilder) { b.Cast(0) },
			"http://gokaru.local/image/31skno1/category/100/200/0/picture.jpg"},
		{"width", func(b *ThumbnailURLBuilder) { b.Width(845) },
			"http://gokaru.local/image/15ikl8u/category/845/200/8/picture.jpg"},
		{"height", func(b *ThumbnailURLBuilder) { b.Height(462) },
			"http://gokaru.local/image/ha2dt6/category/100/462/8/picture.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := filledBuilder(t)
			tt.mutate(b)
			u, err := b.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, u)
		})
	}
}

func TestThumbnailURLBuilder_CastIsIdempotentAndCommutative(t *testing.T) {
	a := defaultBuilder(t).Cast(CastTrim).Cast(CastExtent).Cast(CastTrim)
	b := defaultBuilder(t).Cast(CastExtent).Cast(CastTrim)
	assert.Equal(t, CastTrim|CastExtent, a.Params().Cast)
	assert.Equal(t, a.Params().Cast, b.Params().Cast)

	a.Cast(0)
	assert.Equal(t, Cast(0), a.Params().Cast)
}

func TestThumbnailURLBuilder_SetterErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ThumbnailURLBuilder)
		field  string
	}{
		{"negative width", func(b *ThumbnailURLBuilder) { b.Width(-2) }, "width"},
		{"negative height", func(b *ThumbnailURLBuilder) { b.Height(-2) }, "height"},
		{"negative cast", func(b *ThumbnailURLBuilder) { b.Cast(-7) }, "cast"},
		{"empty category", func(b *ThumbnailURLBuilder) { b.Category("") }, "category"},
		{"empty filename", func(b *ThumbnailURLBuilder) { b.Filename("") }, "filename"},
		{"empty extension", func(b *ThumbnailURLBuilder) { b.Extension("") }, "extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := filledBuilder(t)
			before := b.Params()

			tt.mutate(b)
			requireArgumentField(t, b.Err(), tt.field)
			assert.Equal(t, before, b.Params(), "invalid setter must not change state")

			_, err := b.Build()
			requireArgumentField(t, err, tt.field)
			assert.Equal(t, "", b.String())
		})
	}
}

func TestThumbnailURLBuilder_FirstErrorWins(t *testing.T) {
	b := filledBuilder(t).Width(-1).Height(-1)
	requireArgumentField(t, b.Err(), "width")
}

func TestThumbnailURLBuilder_BuildValidationOrder(t *testing.T) {
	tests := []struct {
		name  string
		build func(*ThumbnailURLBuilder)
		field string
	}{
		{"missing everything", func(b *ThumbnailURLBuilder) {}, "category"},
		{"missing category and filename", func(b *ThumbnailURLBuilder) { b.Extension("jpg") }, "category"},
		{"missing filename and extension", func(b *ThumbnailURLBuilder) { b.Category("category") }, "filename"},
		{"missing extension", func(b *ThumbnailURLBuilder) { b.Category("category").Filename("picture") }, "extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := defaultBuilder(t).Width(100).Height(200).Cast(CastResizeInverse)
			tt.build(b)
			assert.NoError(t, b.Err())

			_, err := b.Build()
			requireArgumentField(t, err, tt.field)
		})
	}
}

func TestThumbnailURLBuilder_EscapesSegments(t *testing.T) {
	b := defaultBuilder(t).Category("my photos").Filename("a/b~c").Extension("jpg")

	u, err := b.Build()
	require.NoError(t, err)
	token, err := b.Token()
	require.NoError(t, err)
	assert.Equal(t, "http://gokaru.local/image/"+token+"/my+photos/0/0/0/a%2Fb%7Ec.jpg", u)
}

func TestThumbnailURLBuilder_MD5(t *testing.T) {
	b, err := NewThumbnailURLBuilder(testImageURL, SourceTypeImage, signature.NewMD5(testSalt))
	require.NoError(t, err)
	b.Category("main").Filename("picture").Extension("jpg").Width(100).Height(200).Cast(CastResizeInverse)

	u, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "http://gokaru.local/image/85f854b2f1f819eb2c7b7e694254d40a/main/100/200/8/picture.jpg", u)
}

func TestThumbnailURLBuilder_ClearErr(t *testing.T) {
	b := filledBuilder(t)

	b.Cast(-1)
	_, err := b.Build()
	requireArgumentField(t, err, "cast")
	assert.Empty(t, b.String())

	u, err := b.ClearErr().Build()
	require.NoError(t, err)
	assert.Equal(t, "http://gokaru.local/image/18tom5f/category/100/200/8/picture.jpg", u)
	assert.NoError(t, b.Err())
}

func TestThumbnailURLBuilder_AcceptsZeroString(t *testing.T) {
	b := defaultBuilder(t).Category("0").Filename("0").Extension("0")

	u, err := b.Build()
	require.NoError(t, err)
	assert.Regexp(t, `^http://gokaru\.local/image/[0-9a-v]+/0/0/0/0/0\.0$`, u)
}
