package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_image_repository.go -package mocks github.com/oseiserwaa/kitchen/internal/domain ImageRepository
//go:generate mockgen -destination mocks/mock_image_blob_store.go -package mocks github.com/oseiserwaa/kitchen/internal/domain ImageBlobStore

// UploadedImage is an image uploaded from the admin area. Exactly one of
// Data (inline base64) or ObjectKey (external object store) is set.
type UploadedImage struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mimetype"`
	Size       int64     `json:"size"`
	Data       string    `json:"-"`
	ObjectKey  string    `json:"-"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ImageView is the public representation returned by GET /api/images/{id}
type ImageView struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	DataURL  string `json:"dataUrl,omitempty"`
	URL      string `json:"url,omitempty"`
}

// View renders img for clients, inline images as a data URL
func (img *UploadedImage) View() *ImageView {
	v := &ImageView{ID: img.ID, Filename: img.Filename, URL: img.URL}
	if img.Data != "" {
		v.DataURL = "data:" + img.MimeType + ";base64," + img.Data
	}
	return v
}

type ImageRepository interface {
	Get(ctx context.Context, id string) (*UploadedImage, error)
	Create(ctx context.Context, img *UploadedImage) error
	Delete(ctx context.Context, id string) error
}

// ImageBlobStore decides where image bytes live. Store fills Data or
// ObjectKey and always sets URL.
type ImageBlobStore interface {
	Store(ctx context.Context, img *UploadedImage, payload []byte) error
	Remove(ctx context.Context, img *UploadedImage) error
}
