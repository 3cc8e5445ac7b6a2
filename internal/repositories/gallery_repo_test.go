package repositories_test

import (
	"os"
	"path/filepath"
	"testing"

	"lmcmotors/internal/models"
	"lmcmotors/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*repositories.GalleryStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "placeholder-images.json")
	return repositories.NewGalleryStore(path), path
}

func descriptor(category string) models.ImageDescriptor {
	return models.ImageDescriptor{
		Description: "Team photo at the showroom",
		ImageURL:    "https://images.example.com/photo.jpg",
		ImageHint:   "dealership team",
		Category:    category,
	}
}

func TestGalleryStore_MissingFileIsEmpty(t *testing.T) {
	store, _ := newStore(t)

	images, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestGalleryStore_AddGeneratesSequentialIDs(t *testing.T) {
	store, _ := newStore(t)

	first, err := store.Add(descriptor(""))
	require.NoError(t, err)
	assert.Equal(t, "culture-1", first.ID)

	second, err := store.Add(descriptor(""))
	require.NoError(t, err)
	assert.Equal(t, "culture-2", second.ID)

	// A different category counts independently.
	other, err := store.Add(descriptor("showroom"))
	require.NoError(t, err)
	assert.Equal(t, "showroom-1", other.ID)

	images, err := store.List()
	require.NoError(t, err)
	assert.Len(t, images, 3)
}

func TestGalleryStore_Remove(t *testing.T) {
	store, _ := newStore(t)

	image, err := store.Add(descriptor(""))
	require.NoError(t, err)

	require.NoError(t, store.Remove(image.ID))

	images, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestGalleryStore_RemoveNotFoundLeavesCollectionUnchanged(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Add(descriptor(""))
	require.NoError(t, err)

	err = store.Remove("culture-99")
	assert.ErrorIs(t, err, repositories.ErrImageNotFound)

	images, err := store.List()
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestGalleryStore_PersistsAcrossInstances(t *testing.T) {
	store, path := newStore(t)

	added, err := store.Add(descriptor(""))
	require.NoError(t, err)

	// A fresh store reading the same file sees the write.
	reopened := repositories.NewGalleryStore(path)
	images, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, added.ID, images[0].ID)
	assert.Equal(t, added.ImageURL, images[0].ImageURL)

	// The persisted document keeps the published shape.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "placeholderImages")
}
