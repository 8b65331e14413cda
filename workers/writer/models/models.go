package models

import (
	"time"
)

// Run is one scraper invocation.
type Run struct {
	ID          string         `gorm:"primaryKey;type:text"`
	Status      string         `gorm:"type:text;not null"`
	Counts      map[string]int `gorm:"serializer:json;type:jsonb"`
	CompletedAt *time.Time     `gorm:"type:timestamp with time zone"`
}

// TableName overrides the table name
func (Run) TableName() string {
	return "runs"
}

// Post is an accepted Instagram, TikTok, Twitter or Facebook post.
type Post struct {
	ID         int            `gorm:"primaryKey;autoIncrement"`
	RunID      string         `gorm:"type:text;not null;index"`
	Platform   string         `gorm:"type:text;not null;index:idx_posts_platform_external,priority:1"`
	ExternalID string         `gorm:"type:text;index:idx_posts_platform_external,priority:2"`
	Author     string         `gorm:"type:text"`
	Text       string         `gorm:"type:text"`
	URL        string         `gorm:"type:text"`
	Keywords   string         `gorm:"type:text"`
	Likes      int64
	Comments   int64
	Shares     int64
	Views      int64
	PostedAt   *time.Time     `gorm:"type:timestamp with time zone;index"`
	Values     map[string]any `gorm:"serializer:json;type:jsonb"`
}

// TableName overrides the table name
func (Post) TableName() string {
	return "posts"
}

// Page is the metadata of one curated Facebook page.
type Page struct {
	ID           int            `gorm:"primaryKey;autoIncrement"`
	RunID        string         `gorm:"type:text;not null;index"`
	Organization string         `gorm:"type:text"`
	Name         string         `gorm:"type:text"`
	URL          string         `gorm:"type:text;not null;index:idx_pages_url"`
	Likes        int64
	Followers    int64
	Email        string         `gorm:"type:text"`
	Phone        string         `gorm:"type:text"`
	Website      string         `gorm:"type:text"`
	AdStatus     string         `gorm:"type:text"`
	Values       map[string]any `gorm:"serializer:json;type:jsonb"`

	// Relationships
	Media []PageMedia `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (Page) TableName() string {
	return "pages"
}

// PageMedia is a page picture archived to S3.
type PageMedia struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	RunID     string `gorm:"type:text;not null"`
	PageID    int    `gorm:"not null;index"`
	Kind      string `gorm:"type:text;not null"`
	SourceURL string `gorm:"column:source_url;type:text;not null"`
	S3Path    string `gorm:"column:s3_path;type:text"`
}

// TableName overrides the table name
func (PageMedia) TableName() string {
	return "page_media"
}

// All lists the models for auto-migration.
func All() []interface{} {
	return []interface{}{&Run{}, &Post{}, &Page{}, &PageMedia{}}
}
