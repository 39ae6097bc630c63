package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/aretw0/storypath/pkg/domain"
)

// Store implements ports.ReportStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Report
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Report),
	}
}

// Save persists the report in memory.
func (s *Store) Save(ctx context.Context, report *domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[report.ID] = copyReport(report)
	return nil
}

// Load retrieves the report from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.data[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	// Copy on read so callers can't mutate the stored report through the pointer.
	return copyReport(report), nil
}

// Delete removes the report.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored report IDs, newest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]*domain.Report, 0, len(s.data))
	for _, r := range s.data {
		reports = append(reports, r)
	}
	slices.SortFunc(reports, func(a, b *domain.Report) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	ids := make([]string, len(reports))
	for i, r := range reports {
		ids[i] = r.ID
	}
	return ids, nil
}

// Paths are immutable, so copying the slices is enough for isolation.
func copyReport(r *domain.Report) *domain.Report {
	c := *r
	c.Top = slices.Clone(r.Top)
	if r.Best != nil {
		best := *r.Best
		c.Best = &best
	}
	return &c
}
