package app_test

import (
	"context"
	"sort"
	"sync"

	"flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/adapters/places"
	"flex_reviews/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu      sync.Mutex
	rows    map[string]domain.Approval
	writes  int
	failMap error
	failPut error
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: map[string]domain.Approval{}} }

func (f *fakeRepo) UpsertApproval(ctx context.Context, a domain.Approval) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut != nil {
		return f.failPut
	}
	f.writes++
	f.rows[a.ReviewID] = a
	return nil
}

func (f *fakeRepo) ApprovalsMap(ctx context.Context) (domain.ApprovalMap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMap != nil {
		return nil, f.failMap
	}
	out := domain.ApprovalMap{}
	for id, a := range f.rows {
		out[id] = a.Approved
	}
	return out, nil
}

func (f *fakeRepo) GetApproval(ctx context.Context, id string) (domain.Approval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return domain.Approval{}, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) ListApprovals(ctx context.Context, channel string) ([]domain.Approval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Approval{}
	for _, a := range f.rows {
		if channel == "" || a.Channel == channel {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReviewID < out[j].ReviewID })
	return out, nil
}

type fakeLive struct {
	items []hostaway.RawReview
	calls int
}

func (f *fakeLive) FetchLive(ctx context.Context) []hostaway.RawReview {
	f.calls++
	if f.items == nil {
		return []hostaway.RawReview{}
	}
	return f.items
}

type fakePlaces struct {
	ids    map[string]string
	places map[string]places.Place
	finds  int
}

func (f *fakePlaces) FindPlaceID(ctx context.Context, q string) (string, bool) {
	f.finds++
	id, ok := f.ids[q]
	return id, ok
}

func (f *fakePlaces) FetchPlace(ctx context.Context, id string) places.Place {
	return f.places[id]
}

func ptr[T any](v T) *T { return &v }

func ids(rs []domain.Review) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ReviewID
	}
	return out
}
