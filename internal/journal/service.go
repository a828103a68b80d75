package journal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/timeutil"
)

// TagCount pairs a tag with the number of entries carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Service implements the journal use-cases on top of Walk and Load.
type Service struct {
	root   string
	logger *slog.Logger
}

// NewService creates a journal service rooted at the given directory.
func NewService(root string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{root: root, logger: logger}
}

// Root returns the journal root directory.
func (s *Service) Root() string { return s.root }

// Entries runs a full walk and separates parsed entries from per-path
// read failures. A failure on one path never hides the others.
func (s *Service) Entries(_ context.Context) ([]*Entry, []error) {
	var entries []*Entry
	var errs []error
	for _, r := range Walk(s.root, Load) {
		if r.Err != nil {
			s.logger.Warn("entry load failed",
				slog.String("path", r.Path),
				slog.String("error", r.Err.Error()))
			errs = append(errs, r.Err)
			continue
		}
		entries = append(entries, r.Value)
	}
	return entries, errs
}

// TagCounts returns every tag with its entry count, sorted by ascending
// count and then by tag name.
func (s *Service) TagCounts(ctx context.Context) ([]TagCount, []error) {
	entries, errs := s.Entries(ctx)

	counts := make(map[string]int)
	for _, e := range entries {
		for _, t := range e.Tags() {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out, errs
}

// IDs returns the identifier of every entry that has one, sorted.
func (s *Service) IDs(ctx context.Context) ([]string, []error) {
	entries, errs := s.Entries(ctx)
	var ids []string
	for _, e := range entries {
		if id, ok := e.ID(); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, errs
}

// ReadRaw returns the raw on-disk content of an entry file.
func (s *Service) ReadRaw(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("journal: read %s: %w", path, err)
	}
	return data, nil
}

// FindByID returns the entry whose id matches, or apperr.ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id string) (*Entry, error) {
	entries, _ := s.Entries(ctx)
	for _, e := range entries {
		if eid, ok := e.ID(); ok && eid == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("entry with id %q: %w", id, apperr.ErrNotFound)
}

// Create writes a new dated entry seeded with metadata and returns its
// path. The filename is <date>-<name>.md. The entry's id is name unless
// another entry already claims it, in which case the id is left empty.
// A file lock in the journal root serializes concurrent creates.
func (s *Service) Create(ctx context.Context, name, tags, body string) (string, error) {
	now := timeutil.Now()
	filename := fmt.Sprintf("%s-%s.md", now.Format("2006-01-02"), name)
	path := filepath.Join(s.root, filename)

	lock := flock.New(filepath.Join(s.root, ".dagaz.lock"))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("journal: lock root: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", apperr.ErrAlreadyExists, path)
	}

	id := name
	entries, _ := s.Entries(ctx)
	for _, e := range entries {
		if eid, ok := e.ID(); ok && eid == name {
			id = ""
			break
		}
	}

	content := fmt.Sprintf("tags: %s\nid: %s\npubdate: %s\n---\n\n%s\n",
		tags, id, timeutil.Format(now), body)

	if err := writeAtomic(path, []byte(content)); err != nil {
		return "", err
	}
	s.logger.Info("entry created", slog.String("path", path), slog.String("id", id))
	return path, nil
}

// writeAtomic writes content via tmp file → fsync → rename so readers
// (including a concurrent walk) never observe a partial entry.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".dagaz-tmp-*")
	if err != nil {
		return fmt.Errorf("journal: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("journal: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("journal: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("journal: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("journal: rename: %w", err)
	}
	success = true
	return nil
}
