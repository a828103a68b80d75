// Package journal parses journal entries and walks journal trees.
//
// An entry is a small text file optionally prefixed with a metadata
// block, terminated by a line containing only "---". The block decodes
// as YAML; when it does not, the entry is still usable and carries the
// decode diagnostic alongside the raw content.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/dagaz/internal/metadata"
)

// Entry is one parsed journal file. It is constructed once per file per
// walk and never mutated afterwards.
type Entry struct {
	Path     string
	FileInfo os.FileInfo
	Metadata metadata.Map

	// MetadataErr carries the decode diagnostic when a metadata block
	// was present but failed to decode. The entry itself is still valid.
	MetadataErr error

	Body string
}

// Load reads and parses the entry at path. Only open/read/stat failures
// are returned as errors; a malformed metadata block degrades to an
// entry with empty metadata, the whole file as body, and MetadataErr set.
func Load(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("journal: read %s: %w", path, err)
	}

	lines := splitLines(data)

	delim := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			delim = i
			break
		}
	}

	meta := metadata.Map{}
	var metaErr error
	var body string

	if delim >= 0 {
		decoded, decErr := metadata.Decode([]byte(strings.Join(lines[:delim], "\n")))
		if decErr != nil {
			metaErr = decErr
			body = strings.Join(lines, "\n")
		} else {
			meta = decoded
			body = strings.Join(lines[delim+1:], "\n")
		}
	} else {
		// No delimiter anywhere: the whole file is a candidate metadata
		// block. Prose fails to decode as a mapping and becomes the body.
		decoded, decErr := metadata.Decode(data)
		if decErr != nil {
			metaErr = decErr
			body = strings.Join(lines, "\n")
		} else {
			meta = decoded
		}
	}

	meta["tags"] = metadata.NormalizeTags(meta.Get("tags"))

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("journal: stat %s: %w", path, err)
	}

	return &Entry{
		Path:        path,
		FileInfo:    info,
		Metadata:    meta,
		MetadataErr: metaErr,
		Body:        body,
	}, nil
}

// Tags returns the normalized tag sequence. It is never nil: tag
// normalization runs on every parse, even when decoding failed.
func (e *Entry) Tags() []string {
	tags := e.Metadata.Get("tags").Strings()
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// ID returns the entry's identifier. An absent "id" key and an empty
// string both read as no id.
func (e *Entry) ID() (string, bool) {
	v := e.Metadata.Get("id")
	if v.Kind() != metadata.String || v.Str() == "" {
		return "", false
	}
	return v.Str(), true
}

// IsEligible reports whether path is an indexable journal file: a
// non-directory whose extension is .md or .txt. Unreadable or special
// files are excluded rather than erroring.
func IsEligible(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	switch filepath.Ext(path) {
	case ".md", ".txt":
		return true
	}
	return false
}

// splitLines mirrors line-reader semantics: the trailing newline does
// not produce a final empty line, and an empty file has no lines.
func splitLines(data []byte) []string {
	s := string(data)
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
