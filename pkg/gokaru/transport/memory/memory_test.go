package memory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	tr := New()

	require.NoError(t, tr.Put(ctx, "http://gokaru.local/file/docs/a.txt", strings.NewReader("alpha"), 5))
	require.NoError(t, tr.Put(ctx, "http://gokaru.local/file/docs/b.txt", strings.NewReader("beta"), 4))

	data, ok := tr.Get("http://gokaru.local/file/docs/a.txt")
	require.True(t, ok)
	assert.Equal(t, "alpha", string(data))
	assert.Equal(t, []string{"http://gokaru.local/file/docs/a.txt", "http://gokaru.local/file/docs/b.txt"}, tr.URLs())

	require.NoError(t, tr.Delete(ctx, "http://gokaru.local/file/docs/a.txt"))
	_, ok = tr.Get("http://gokaru.local/file/docs/a.txt")
	assert.False(t, ok)

	err := tr.Delete(ctx, "http://gokaru.local/file/docs/a.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	ops := tr.Operations()
	require.Len(t, ops, 4)
	assert.Equal(t, "PUT", ops[0].Method)
	assert.Equal(t, int64(5), ops[0].Size)
	assert.Equal(t, "DELETE", ops[3].Method)
}

func TestTransport_FailWith(t *testing.T) {
	boom := errors.New("boom")
	tr := New()
	tr.FailWith = boom

	assert.ErrorIs(t, tr.Put(context.Background(), "u", strings.NewReader("x"), 1), boom)
	assert.ErrorIs(t, tr.Delete(context.Background(), "u"), boom)
	assert.Empty(t, tr.URLs())
	assert.Len(t, tr.Operations(), 2)
}

func TestTransport_IgnoreMissing(t *testing.T) {
	tr := New()
	tr.IgnoreMissing = true

	require.NoError(t, tr.Delete(context.Background(), "http://gokaru.local/image/a/b"))
	assert.Equal(t, []Operation{{Method: "DELETE", URL: "http://gokaru.local/image/a/b", Size: -1}}, tr.Operations())
}

func TestTransport_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := New()
	assert.ErrorIs(t, tr.Put(ctx, "u", strings.NewReader("x"), 1), context.Canceled)
	assert.Empty(t, tr.Operations())
}
