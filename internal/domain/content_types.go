package domain

import (
	"encoding/json"
	"fmt"
)

// Content is the typed view of a content document. Each known key has its
// own variant; anything else decodes to RawContent.
type Content interface {
	Key() ContentKey
}

type HeroSection struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Tagline  string `json:"tagline"`
}

type TitledText struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type HomeContent struct {
	Hero     HeroSection  `json:"hero"`
	Features []TitledText `json:"features"`
	CTA      TitledText   `json:"cta"`
}

type Story struct {
	Paragraph1 string   `json:"paragraph1"`
	Paragraph2 string   `json:"paragraph2"`
	Paragraph3 string   `json:"paragraph3"`
	Images     []string `json:"images"`
}

type TeamMember struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type AboutContent struct {
	Story  Story        `json:"story"`
	Values []TitledText `json:"values"`
	Team   []TeamMember `json:"team"`
}

type GalleryImage struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Category string `json:"category"`
}

type GalleryContent []GalleryImage

type OpeningHours struct {
	Weekday string `json:"weekday"`
	Weekend string `json:"weekend"`
}

type ContactInfo struct {
	Address string       `json:"address"`
	Phone   string       `json:"phone"`
	Email   string       `json:"email"`
	Hours   OpeningHours `json:"hours"`
}

type ContactPageContent struct {
	HeroTitle    string `json:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle"`
}

type ContactPageInfo struct {
	PageContent ContactPageContent `json:"pageContent"`
	ContactInfo ContactInfo        `json:"contactInfo"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
}

type FooterContent struct {
	CopyrightText string      `json:"copyrightText"`
	Description   string      `json:"description"`
	SocialLinks   SocialLinks `json:"socialLinks"`
}

// HeroImages maps a page name to its slideshow image URLs
type HeroImages map[string][]string

type HeroText struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Tagline  string `json:"tagline,omitempty"`
}

// HeroTexts maps a page name to its hero copy
type HeroTexts map[string]HeroText

// RawContent is any document stored under a key without a typed variant
type RawContent struct {
	ContentKey ContentKey
	Data       json.RawMessage
}

func (HomeContent) Key() ContentKey     { return KeyHome }
func (AboutContent) Key() ContentKey    { return KeyAbout }
func (ContactPageInfo) Key() ContentKey { return KeyContactPage }
func (FooterContent) Key() ContentKey   { return KeyFooter }
func (GalleryContent) Key() ContentKey  { return KeyGallery }
func (HeroImages) Key() ContentKey      { return KeyHeroImages }
func (HeroTexts) Key() ContentKey       { return KeyHeroTexts }
func (r RawContent) Key() ContentKey    { return r.ContentKey }

// DecodeContent parses raw into the variant registered for key. Malformed
// JSON, or JSON of the wrong shape for a known key, is a ValidationError.
func DecodeContent(key ContentKey, raw []byte) (Content, error) {
	if !json.Valid(raw) {
		return nil, NewValidationError(fmt.Sprintf("%s: body is not valid JSON", key))
	}

	var target Content
	switch key {
	case KeyHome:
		target = &HomeContent{}
	case KeyAbout:
		target = &AboutContent{}
	case KeyContactPage:
		target = &ContactPageInfo{}
	case KeyFooter:
		target = &FooterContent{}
	case KeyGallery:
		target = &GalleryContent{}
	case KeyHeroImages:
		target = &HeroImages{}
	case KeyHeroTexts:
		target = &HeroTexts{}
	default:
		return &RawContent{ContentKey: key, Data: json.RawMessage(raw)}, nil
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid %s: %v", key, err))
	}
	return target, nil
}

// EncodeContent returns the JSON form of c
func EncodeContent(c Content) (json.RawMessage, error) {
	switch v := c.(type) {
	case *RawContent:
		return v.Data, nil
	case RawContent:
		return v.Data, nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", c.Key(), err)
	}
	return raw, nil
}
