package signature

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	got := Canonical("salt", "image", "main", "picture.jpg", 100, 200, 8)
	assert.Equal(t, "salt/image/main/picture.jpg/100/200/8", got)

	got = Canonical("", "file", "c", "f", 0, 0, 0)
	assert.Equal(t, "/file/c/f/0/0/0", got)
}

func TestMD5Generator_Sign(t *testing.T) {
	g := NewMD5("salt")
	var _ Generator = g

	assert.Equal(t, "85f854b2f1f819eb2c7b7e694254d40a", g.Sign("image", "main", "picture.jpg", 100, 200, 8))
}

func TestMurmurGenerator_Sign(t *testing.T) {
	g := NewMurmur("salt")
	var _ Generator = g

	tests := []struct {
		name     string
		category string
		fileName string
		width    int
		height   int
		cast     int
		want     string
	}{
		{"main category", "main", "picture.jpg", 100, 200, 8, "vukrbi"},
		{"filled builder", "category", "picture.jpg", 100, 200, 8, "18tom5f"},
		{"webp extension", "category", "picture.webp", 100, 200, 8, "30s3bt3"},
		{"combined cast", "category", "picture.jpg", 100, 200, 72, "10hn4n0"},
		{"no cast", "category", "picture.jpg", 100, 200, 0, "31skno1"},
		{"other filename", "category", "another_filename.jpg", 100, 200, 8, "2dp9g0d"},
		{"other width", "category", "picture.jpg", 845, 200, 8, "15ikl8u"},
		{"other height", "category", "picture.jpg", 100, 462, 8, "ha2dt6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Sign("image", tt.category, tt.fileName, tt.width, tt.height, tt.cast))
		})
	}
}

func TestGenerators_Deterministic(t *testing.T) {
	for _, g := range []Generator{NewMD5("salt"), NewMurmur("salt")} {
		first := g.Sign("image", "main", "picture.jpg", 100, 200, 8)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, g.Sign("image", "main", "picture.jpg", 100, 200, 8))
		}
		assert.NotEqual(t, first, g.Sign("image", "main", "picture.jpg", 100, 201, 8))
		assert.NotEqual(t, first, g.Sign("file", "main", "picture.jpg", 100, 200, 8))
	}
}

func TestGenerators_SaltChangesToken(t *testing.T) {
	assert.NotEqual(t,
		NewMurmur("salt").Sign("image", "main", "picture.jpg", 100, 200, 8),
		NewMurmur("pepper").Sign("image", "main", "picture.jpg", 100, 200, 8),
	)
	assert.NotEqual(t,
		NewMD5("salt").Sign("image", "main", "picture.jpg", 100, 200, 8),
		NewMD5("pepper").Sign("image", "main", "picture.jpg", 100, 200, 8),
	)
}

func TestGenerators_StringHidesSalt(t *testing.T) {
	assert.NotContains(t, fmt.Sprint(NewMD5("topsecret")), "topsecret")
	assert.NotContains(t, fmt.Sprint(NewMurmur("topsecret")), "topsecret")
}

func TestNew(t *testing.T) {
	g, err := New(AlgorithmMD5, "salt")
	require.NoError(t, err)
	assert.IsType(t, &MD5Generator{}, g)

	g, err = New("MURMUR", "salt")
	require.NoError(t, err)
	assert.IsType(t, &MurmurGenerator{}, g)

	g, err = New("", "salt")
	require.NoError(t, err)
	assert.IsType(t, &MurmurGenerator{}, g)

	_, err = New("sha1", "salt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown algorithm")
}
