package models

// GalleryImage is one entry in the flat-file image gallery. IDs carry a
// category prefix, e.g. "culture-3".
type GalleryImage struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ImageHint   string `json:"imageHint"`
}

// ImageDescriptor is a gallery image without its identity, as submitted
// through the command API. Category selects the id prefix and defaults to
// "culture" when empty.
type ImageDescriptor struct {
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
	ImageHint   string `json:"imageHint"`
	Category    string `json:"category"`
}
