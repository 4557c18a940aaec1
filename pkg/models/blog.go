package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Blog struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Author      string         `json:"author"`
	Description string         `gorm:"not null" json:"description"`
	Tags        []string       `gorm:"-" json:"tags"`
	TagsRaw     string         `gorm:"column:tags" json:"-"`
	Images      pq.StringArray `gorm:"type:text[];not null" json:"images"`
	PubDate     time.Time      `json:"pubDate"`
	Popular     bool           `gorm:"default:false" json:"popular"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave serializes Tags into the single text column backing them.
func (b *Blog) BeforeSave(tx *gorm.DB) error {
	if b.Tags == nil {
		b.Tags = []string{}
	}
	raw, err := json.Marshal(b.Tags)
	if err != nil {
		return err
	}
	b.TagsRaw = string(raw)
	return nil
}

// AfterFind parses the stored tags blob back into an ordered sequence.
// A malformed blob yields an empty sequence, never an error.
func (b *Blog) AfterFind(tx *gorm.DB) error {
	b.Tags = ParseTags(b.TagsRaw)
	return nil
}

// ParseTags decodes a JSON array of strings, falling back to an empty
// sequence on any malformed input. Lenient by design: a bad tags value
// must not fail the surrounding request.
func ParseTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
