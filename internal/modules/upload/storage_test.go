package upload

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutStoresImage(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")

	url, err := store.Put(strings.NewReader("fake-png-bytes"), "photo.PNG", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/img_"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	entries, err := os.ReadDir(store.BaseDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPutRejectsNonImages(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")

	_, err := store.Put(strings.NewReader("x"), "notes.txt", "text/plain")
	assert.Error(t, err)

	// Image extension with a non-image content type is rejected too.
	_, err = store.Put(strings.NewReader("x"), "sneaky.png", "application/octet-stream")
	assert.Error(t, err)
}
