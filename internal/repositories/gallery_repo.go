package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"lmcmotors/internal/models"
)

// ErrImageNotFound is returned when a gallery image id is absent from the
// persisted collection.
var ErrImageNotFound = errors.New("gallery image not found")

// defaultCategory is the id prefix used when a submission names no category.
const defaultCategory = "culture"

// GalleryStore persists the image gallery as a single JSON document on disk.
// Every mutation reads the whole collection, changes it in memory and
// rewrites the file. There is no locking; a single writer is assumed.
type GalleryStore struct {
	path string
}

// NewGalleryStore creates a gallery store backed by the file at path. A
// missing file is treated as an empty collection.
func NewGalleryStore(path string) *GalleryStore {
	return &GalleryStore{
		path: path,
	}
}

// galleryFile is the persisted document shape.
type galleryFile struct {
	PlaceholderImages []models.GalleryImage `json:"placeholderImages"`
}

func (s *GalleryStore) read() (*galleryFile, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &galleryFile{PlaceholderImages: []models.GalleryImage{}}, nil
		}
		return nil, fmt.Errorf("failed to read gallery file: %w", err)
	}

	var data galleryFile
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse gallery file: %w", err)
	}
	if data.PlaceholderImages == nil {
		data.PlaceholderImages = []models.GalleryImage{}
	}
	return &data, nil
}

func (s *GalleryStore) write(data *galleryFile) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal gallery data: %w", err)
	}
	if err := os.WriteFile(s.path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write gallery file: %w", err)
	}
	return nil
}

// List returns all gallery images in persisted order.
func (s *GalleryStore) List() ([]models.GalleryImage, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return data.PlaceholderImages, nil
}

// Add appends a new image to the gallery. The id is generated as
// "<category>-<n>" where n is the count of existing ids sharing that prefix
// plus one.
func (s *GalleryStore) Add(descriptor models.ImageDescriptor) (*models.GalleryImage, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}

	category := descriptor.Category
	if category == "" {
		category = defaultCategory
	}

	prefix := category + "-"
	count := 0
	for _, img := range data.PlaceholderImages {
		if strings.HasPrefix(img.ID, prefix) {
			count++
		}
	}

	image := models.GalleryImage{
		ID:          fmt.Sprintf("%s-%d", category, count+1),
		Description: descriptor.Description,
		ImageURL:    descriptor.ImageURL,
		ImageHint:   descriptor.ImageHint,
	}
	data.PlaceholderImages = append(data.PlaceholderImages, image)

	if err := s.write(data); err != nil {
		return nil, err
	}
	return &image, nil
}

// Remove deletes an image by id, failing with ErrImageNotFound and leaving
// the collection untouched when the id is absent.
func (s *GalleryStore) Remove(id string) error {
	data, err := s.read()
	if err != nil {
		return err
	}

	kept := make([]models.GalleryImage, 0, len(data.PlaceholderImages))
	for _, img := range data.PlaceholderImages {
		if img.ID != id {
			kept = append(kept, img)
		}
	}
	if len(kept) == len(data.PlaceholderImages) {
		return ErrImageNotFound
	}

	data.PlaceholderImages = kept
	return s.write(data)
}
