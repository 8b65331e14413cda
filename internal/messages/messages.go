// Package messages holds the queue payloads exchanged between the scraper and
// the downstream workers.
package messages

import "time"

const (
	MsgTypeRecord      = "record"
	MsgTypeMediaStored = "media_stored"
	MsgTypeRunComplete = "run_complete"

	MediaKindProfile = "profile_picture"
	MediaKindCover   = "cover_photo"
)

// WriterMessage is consumed by the writer worker. Type selects which fields are set.
type WriterMessage struct {
	Type     string         `json:"type"`
	RunID    string         `json:"run_id"`
	Platform string         `json:"platform,omitempty"`
	Values   map[string]any `json:"values,omitempty"`
	PostedAt *time.Time     `json:"posted_at,omitempty"`

	// media_stored
	PageURL   string `json:"page_url,omitempty"`
	MediaKind string `json:"media_kind,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
	S3Path    string `json:"s3_path,omitempty"`

	// run_complete
	Counts      map[string]int `json:"counts,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// IndexMessage is consumed by the indexer worker.
type IndexMessage struct {
	RunID    string         `json:"run_id"`
	Platform string         `json:"platform"`
	Values   map[string]any `json:"values"`
	PostedAt *time.Time     `json:"posted_at,omitempty"`
}

// MediaMessage asks the media worker to archive one page picture.
type MediaMessage struct {
	RunID        string `json:"run_id"`
	PageURL      string `json:"page_url"`
	Organization string `json:"organization"`
	ImageURL     string `json:"image_url"`
	Kind         string `json:"kind"`
}
