package api

import (
	"time"

	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/metadata"
)

// EntryListItem is a lightweight item in a list response.
type EntryListItem struct {
	Path             string    `json:"path"`
	ID               string    `json:"id,omitempty"`
	Tags             []string  `json:"tags"`
	Size             int64     `json:"size"`
	UpdatedAt        time.Time `json:"updated_at"`
	HasMetadataError bool      `json:"has_metadata_error,omitempty"`
}

// EntryListResponse wraps an entry listing. Errors carries per-path read
// failures encountered during the walk; they never suppress the
// successfully parsed entries.
type EntryListResponse struct {
	Entries []EntryListItem `json:"entries"`
	Total   int             `json:"total"`
	Errors  []string        `json:"errors,omitempty"`
}

// EntryDetail is the full representation of an entry.
type EntryDetail struct {
	Path          string       `json:"path"`
	ID            string       `json:"id,omitempty"`
	Tags          []string     `json:"tags"`
	Metadata      metadata.Map `json:"metadata"`
	MetadataError string       `json:"metadata_error,omitempty"`
	Body          string       `json:"body"`
	Checksum      string       `json:"checksum,omitempty"`
	Size          int64        `json:"size"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TagCountsResponse wraps the tag listing.
type TagCountsResponse struct {
	Tags   []journal.TagCount `json:"tags"`
	Errors []string           `json:"errors,omitempty"`
}
