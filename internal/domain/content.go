package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_content_repository.go -package mocks github.com/oseiserwaa/kitchen/internal/domain ContentRepository

type ContentKey string

const (
	KeyHome         ContentKey = "home_content"
	KeyAbout        ContentKey = "about_content"
	KeyContactPage  ContentKey = "contact_page"
	KeyFooter       ContentKey = "footer"
	KeyGallery      ContentKey = "gallery_images"
	KeyHeroImages   ContentKey = "hero_images"
	KeyHeroTexts    ContentKey = "hero_texts"
	KeySiteVisitors ContentKey = "site_visitors"
)

// Reserved keys are written by the server only
func (k ContentKey) Reserved() bool {
	return k == KeySiteVisitors
}

// ContentDocument is one row of the key/value content table. For keys with
// collections, Value holds the document with each collection replaced by an
// empty array placeholder.
type ContentDocument struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CollectionSpec names an array stored item by item next to its document.
// An empty Field means the document itself is the array.
type CollectionSpec struct {
	Name  string
	Field string
}

var collectionLayout = map[ContentKey][]CollectionSpec{
	KeyHome:    {{Name: "features", Field: "features"}},
	KeyAbout:   {{Name: "values", Field: "values"}, {Name: "team", Field: "team"}},
	KeyGallery: {{Name: "images"}},
}

// Collections returns the wipe-and-replace collections of key, if any
func Collections(key ContentKey) []CollectionSpec {
	return collectionLayout[key]
}

var emptyArray = json.RawMessage("[]")

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// SplitDocument separates the collections of a document from the rest of
// it. Every collection of the key is present in the result so that saving
// it replaces whatever was stored before.
func SplitDocument(key ContentKey, raw json.RawMessage) (json.RawMessage, map[string][]json.RawMessage, error) {
	specs := Collections(key)
	if len(specs) == 0 {
		return raw, nil, nil
	}

	collections := make(map[string][]json.RawMessage, len(specs))

	if len(specs) == 1 && specs[0].Field == "" {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, nil, NewValidationError(fmt.Sprintf("%s must be a JSON array", key))
		}
		if items == nil {
			items = []json.RawMessage{}
		}
		collections[specs[0].Name] = items
		return emptyArray, collections, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, nil, NewValidationError(fmt.Sprintf("%s must be a JSON object", key))
	}

	for _, spec := range specs {
		items := []json.RawMessage{}
		if v, ok := obj[spec.Field]; ok && !isNull(v) {
			if err := json.Unmarshal(v, &items); err != nil {
				return nil, nil, NewValidationError(fmt.Sprintf("%s.%s must be a JSON array", key, spec.Field))
			}
			if items == nil {
				items = []json.RawMessage{}
			}
			obj[spec.Field] = emptyArray
		}
		collections[spec.Name] = items
	}

	doc, err := json.Marshal(obj)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return doc, collections, nil
}

// AssembleDocument is the inverse of SplitDocument
func AssembleDocument(key ContentKey, doc json.RawMessage, collections map[string][]json.RawMessage) (json.RawMessage, error) {
	specs := Collections(key)
	if len(specs) == 0 {
		return doc, nil
	}

	itemsOf := func(name string) []json.RawMessage {
		if items := collections[name]; items != nil {
			return items
		}
		return []json.RawMessage{}
	}

	if len(specs) == 1 && specs[0].Field == "" {
		return json.Marshal(itemsOf(specs[0].Name))
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(doc, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("stored %s is not a JSON object", key)
	}
	for _, spec := range specs {
		v, ok := obj[spec.Field]
		if !ok || isNull(v) {
			continue
		}
		items, err := json.Marshal(itemsOf(spec.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s.%s: %w", key, spec.Field, err)
		}
		obj[spec.Field] = items
	}
	return json.Marshal(obj)
}

type ContentRepository interface {
	// Get returns ErrContentNotFound when key was never saved
	Get(ctx context.Context, key string) (*ContentDocument, error)
	// Save upserts the document and replaces every collection named in
	// collections, all in one transaction
	Save(ctx context.Context, doc *ContentDocument, collections map[string][]json.RawMessage) error
	// SaveIfAbsent is Save for keys that do not exist yet; it reports
	// whether anything was written
	SaveIfAbsent(ctx context.Context, doc *ContentDocument, collections map[string][]json.RawMessage) (bool, error)
	// ListItems returns a collection in position order
	ListItems(ctx context.Context, key, collection string) ([]json.RawMessage, error)
	// Snapshot reads the document and the named collections in one read
	// transaction, so a concurrent Save from another process is seen either
	// entirely or not at all
	Snapshot(ctx context.Context, key string, collections []string) (*ContentDocument, map[string][]json.RawMessage, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*ContentDocument, error)
}
