package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.opencensus.io/tag"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/tracing"
)

// keyedMutex hands out one mutex per content key
type keyedMutex struct {
	mu    sync.Mutex
	locks map[domain.ContentKey]*sync.Mutex
}

func (k *keyedMutex) lock(key domain.ContentKey) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[domain.ContentKey]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// ContentService stores the site's editable documents. Saves of the same key
// are serialized so a collection always holds exactly one writer's items.
type ContentService struct {
	repo   domain.ContentRepository
	logger logger.Logger
	locks  keyedMutex
}

func NewContentService(repo domain.ContentRepository, logger logger.Logger) *ContentService {
	return &ContentService{repo: repo, logger: logger}
}

func (s *ContentService) Get(ctx context.Context, key domain.ContentKey) (json.RawMessage, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ContentService", "Get")
	defer span.End()
	tracing.AddAttribute(ctx, "content_key", string(key))

	// the mutex orders readers against writers in this process; the snapshot
	// covers writers in other processes sharing the database
	unlock := s.locks.lock(key)
	defer unlock()

	specs := domain.Collections(key)
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}

	doc, collections, err := s.repo.Snapshot(ctx, string(key), names)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("content_key", key).Error(fmt.Sprintf("Failed to get content: %v", err))
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	if len(specs) == 0 {
		return doc.Value, nil
	}
	return domain.AssembleDocument(key, doc.Value, collections)
}

// Set validates raw against the shape registered for key and overwrites the
// stored document
func (s *ContentService) Set(ctx context.Context, key domain.ContentKey, raw json.RawMessage) error {
	ctx, span := tracing.StartServiceSpan(ctx, "ContentService", "Set")
	defer span.End()
	tracing.AddAttribute(ctx, "content_key", string(key))

	doc, collections, err := s.prepare(key, raw)
	if err != nil {
		return err
	}

	unlock := s.locks.lock(key)
	defer unlock()

	if err := s.repo.Save(ctx, doc, collections); err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.WithField("content_key", key).Error(fmt.Sprintf("Failed to save content: %v", err))
		return fmt.Errorf("failed to save content: %w", err)
	}
	tracing.Count(ctx, tracing.ContentSaves, tag.Upsert(tracing.KeyContentKey, string(key)))
	return nil
}

// SetIfAbsent writes raw only when key has never been saved
func (s *ContentService) SetIfAbsent(ctx context.Context, key domain.ContentKey, raw json.RawMessage) (bool, error) {
	doc, collections, err := s.prepare(key, raw)
	if err != nil {
		return false, err
	}

	unlock := s.locks.lock(key)
	defer unlock()

	written, err := s.repo.SaveIfAbsent(ctx, doc, collections)
	if err != nil {
		s.logger.WithField("content_key", key).Error(fmt.Sprintf("Failed to seed content: %v", err))
		return false, fmt.Errorf("failed to save content: %w", err)
	}
	return written, nil
}

func (s *ContentService) prepare(key domain.ContentKey, raw json.RawMessage) (*domain.ContentDocument, map[string][]json.RawMessage, error) {
	if key == "" {
		return nil, nil, domain.NewValidationError("content key is required")
	}
	if key.Reserved() {
		return nil, nil, domain.NewValidationError(fmt.Sprintf("content key %s is reserved", key))
	}
	if _, err := domain.DecodeContent(key, raw); err != nil {
		return nil, nil, err
	}

	value, collections, err := domain.SplitDocument(key, raw)
	if err != nil {
		return nil, nil, err
	}
	return &domain.ContentDocument{Key: string(key), Value: value}, collections, nil
}

func (s *ContentService) Delete(ctx context.Context, key domain.ContentKey) error {
	if key.Reserved() {
		return domain.NewValidationError(fmt.Sprintf("content key %s is reserved", key))
	}

	unlock := s.locks.lock(key)
	defer unlock()

	if err := s.repo.Delete(ctx, string(key)); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("content_key", key).Error(fmt.Sprintf("Failed to delete content: %v", err))
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}

// Keys lists every stored key except the reserved ones
func (s *ContentService) Keys(ctx context.Context) ([]domain.ContentKey, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list content: %v", err))
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	keys := make([]domain.ContentKey, 0, len(docs))
	for _, doc := range docs {
		if key := domain.ContentKey(doc.Key); !key.Reserved() {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// GetContent returns the typed variant stored under key, or nil when absent
func (s *ContentService) GetContent(ctx context.Context, key domain.ContentKey) (domain.Content, error) {
	raw, err := s.Get(ctx, key)
	if err != nil || raw == nil {
		return nil, err
	}
	return domain.DecodeContent(key, raw)
}

// SetContent stores c under its own key
func (s *ContentService) SetContent(ctx context.Context, c domain.Content) error {
	raw, err := domain.EncodeContent(c)
	if err != nil {
		return err
	}
	return s.Set(ctx, c.Key(), raw)
}

func getAs[T any](ctx context.Context, s *ContentService, key domain.ContentKey) (*T, error) {
	c, err := s.GetContent(ctx, key)
	if err != nil || c == nil {
		return nil, err
	}
	v, ok := any(c).(*T)
	if !ok {
		return nil, fmt.Errorf("unexpected content type %T for %s", c, key)
	}
	return v, nil
}

func (s *ContentService) GetHome(ctx context.Context) (*domain.HomeContent, error) {
	return getAs[domain.HomeContent](ctx, s, domain.KeyHome)
}

func (s *ContentService) SetHome(ctx context.Context, c domain.HomeContent) error {
	return s.SetContent(ctx, c)
}

func (s *ContentService) GetAbout(ctx context.Context) (*domain.AboutContent, error) {
	return getAs[domain.AboutContent](ctx, s, domain.KeyAbout)
}

func (s *ContentService) SetAbout(ctx context.Context, c domain.AboutContent) error {
	return s.SetContent(ctx, c)
}

func (s *ContentService) GetContactPage(ctx context.Context) (*domain.ContactPageInfo, error) {
	return getAs[domain.ContactPageInfo](ctx, s, domain.KeyContactPage)
}

func (s *ContentService) GetFooter(ctx context.Context) (*domain.FooterContent, error) {
	return getAs[domain.FooterContent](ctx, s, domain.KeyFooter)
}

func (s *ContentService) GetGallery(ctx context.Context) (*domain.GalleryContent, error) {
	return getAs[domain.GalleryContent](ctx, s, domain.KeyGallery)
}

func (s *ContentService) GetHeroImages(ctx context.Context) (*domain.HeroImages, error) {
	return getAs[domain.HeroImages](ctx, s, domain.KeyHeroImages)
}

func (s *ContentService) GetHeroTexts(ctx context.Context) (*domain.HeroTexts, error) {
	return getAs[domain.HeroTexts](ctx, s, domain.KeyHeroTexts)
}
