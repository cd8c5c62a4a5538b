// Package reportstore defines the abstract persistence boundary for
// generated reports and a reference in-memory implementation of it.
// Nothing in the retrieval corpus wires a concrete database or cloud
// storage SDK, so Store stays an interface: a real deployment supplies
// its own implementation (a row store, a blob bucket, whatever), and
// InMemoryStore exists so the HTTP adapter and its tests have something
// to run against without one.
package reportstore

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/truespec/truespec/differ"
	"github.com/truespec/truespec/oaserrors"
)

// Record is one persisted comparison result. Repo and Source are
// caller-supplied labels (the repository the comparison belongs to and
// where the request originated); both are optional. Items holds the
// report's findings pre-encoded as a JSON array string, matching the
// persisted field layout of a row store, and may be truncated the same
// way Markdown is.
type Record struct {
	ID             string
	Repo           string
	Source         string
	CreatedAt      time.Time
	Summary        differ.Summary
	Markdown       string
	Truncated      bool
	Items          string
	ItemsTruncated bool
}

// Store is the persistence boundary the HTTP adapter depends on. Put
// rejects a duplicate ID with an [oaserrors.StoreError] whose Conflict
// field is true; callers that receive one should treat the existing
// record as already-written rather than retrying with a new ID.
type Store interface {
	Put(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, bool, error)
	// ListPage returns up to pageSize records for repo (all records when
	// repo is empty) in creation order, plus a continuation token to
	// pass back for the next page. An empty token means there are no
	// more records.
	ListPage(ctx context.Context, repo string, pageSize int, token string) (records []Record, nextToken string, err error)
}

// InMemoryStore is a process-local, mutex-guarded [Store]. Pagination
// tokens are the decimal offset of the next unread record within the
// (repo-filtered) listing; they are opaque to callers but stable only
// within one process's lifetime.
type InMemoryStore struct {
	mu      sync.Mutex
	records []Record
	byID    map[string]int
}

// NewInMemoryStore returns an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[string]int)}
}

func (s *InMemoryStore) Put(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[rec.ID]; exists {
		return &oaserrors.StoreError{Op: "put", Conflict: true, Message: "id already exists: " + rec.ID}
	}

	s.byID[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return Record{}, false, nil
	}
	return s.records[i], true, nil
}

func (s *InMemoryStore) ListPage(_ context.Context, repo string, pageSize int, token string) ([]Record, string, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	offset := 0
	if token != "" {
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			return nil, "", &oaserrors.StoreError{Op: "listPage", Message: "invalid continuation token"}
		}
		offset = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matching []Record
	for _, rec := range s.records {
		if repo == "" || rec.Repo == repo {
			matching = append(matching, rec)
		}
	}

	if offset >= len(matching) {
		return nil, "", nil
	}

	end := offset + pageSize
	if end > len(matching) {
		end = len(matching)
	}

	page := make([]Record, end-offset)
	copy(page, matching[offset:end])

	var next string
	if end < len(matching) {
		next = strconv.Itoa(end)
	}
	return page, next, nil
}
