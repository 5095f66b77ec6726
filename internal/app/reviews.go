package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/adapters/places"
	"flex_reviews/internal/domain"
)

type SourceMode string

const (
	SourceMock SourceMode = "mock"
	SourceLive SourceMode = "live"
	SourceAuto SourceMode = "auto"
)

// LiveFeed fetches raw Hostaway items; it fails soft to an empty slice.
type LiveFeed interface {
	FetchLive(ctx context.Context) []hostaway.RawReview
}

// ReferenceFunc loads the bundled Hostaway dataset.
type ReferenceFunc func() ([]hostaway.RawReview, error)

// PlacesLookup resolves and fetches places; both calls fail soft.
type PlacesLookup interface {
	FindPlaceID(ctx context.Context, query string) (string, bool)
	FetchPlace(ctx context.Context, placeID string) places.Place
}

// ReviewService composes provider output with the current approval snapshot. Nothing is
// kept between calls: every request re-reads approvals and re-normalizes.
type ReviewService struct {
	approvals  domain.ApprovalRepository
	live       LiveFeed
	reference  ReferenceFunc
	places     PlacesLookup
	preferLive bool
	now        func() time.Time
}

func NewReviewService(r domain.ApprovalRepository, live LiveFeed, ref ReferenceFunc, pl PlacesLookup, preferLive bool) *ReviewService {
	return &ReviewService{
		approvals:  r,
		live:       live,
		reference:  ref,
		places:     pl,
		preferLive: preferLive,
		now:        time.Now,
	}
}

// ResolveMode maps the request's source parameter to a mode. Empty selects live when the
// service prefers live data, auto otherwise; unrecognised values behave as auto.
func (s *ReviewService) ResolveMode(raw string) SourceMode {
	switch SourceMode(strings.ToLower(strings.TrimSpace(raw))) {
	case SourceMock:
		return SourceMock
	case SourceLive:
		return SourceLive
	case SourceAuto:
		return SourceAuto
	case "":
		if s.preferLive {
			return SourceLive
		}
		return SourceAuto
	default:
		return SourceAuto
	}
}

// Reviews returns the Hostaway reviews for f.Source, filtered by f.
func (s *ReviewService) Reviews(ctx context.Context, f Filter) ([]domain.Review, error) {
	all, err := s.hostawayReviews(ctx, s.ResolveMode(f.Source))
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

// Selected returns only approved reviews, optionally scoped to one listing.
func (s *ReviewService) Selected(ctx context.Context, listingID, source string) ([]domain.Review, error) {
	approved := true
	return s.Reviews(ctx, Filter{ListingID: listingID, Approved: &approved, Source: source})
}

// PlacesReviews resolves a place (an explicit placeID wins over the text query) and returns
// its normalized reviews. No resolvable place yields an empty list.
func (s *ReviewService) PlacesReviews(ctx context.Context, query, placeID, listingID string) ([]domain.Review, error) {
	approvals, err := s.approvals.ApprovalsMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("load approvals: %w", err)
	}
	pid := strings.TrimSpace(placeID)
	if pid == "" && strings.TrimSpace(query) != "" {
		pid, _ = s.places.FindPlaceID(ctx, query)
	}
	if pid == "" {
		return []domain.Review{}, nil
	}
	place := s.places.FetchPlace(ctx, pid)
	if place.IsZero() {
		return []domain.Review{}, nil
	}
	if place.PlaceID == "" {
		place.PlaceID = pid
	}
	return NormalizePlaces(place, approvals, listingID, s.now()), nil
}

func (s *ReviewService) hostawayReviews(ctx context.Context, mode SourceMode) ([]domain.Review, error) {
	if mode == SourceMock {
		approvals, err := s.approvals.ApprovalsMap(ctx)
		if err != nil {
			return nil, fmt.Errorf("load approvals: %w", err)
		}
		return s.referenceReviews(approvals)
	}

	// approvals snapshot and live fetch are independent; run them side by side
	var (
		approvals domain.ApprovalMap
		items     []hostaway.RawReview
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.approvals.ApprovalsMap(gctx)
		if err != nil {
			return fmt.Errorf("load approvals: %w", err)
		}
		approvals = m
		return nil
	})
	g.Go(func() error {
		items = s.live.FetchLive(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(items) > 0 || mode == SourceLive {
		return NormalizeHostaway(items, approvals), nil
	}
	log.Debug().Msg("no live hostaway data; serving reference dataset")
	observability.ObserveFallback()
	return s.referenceReviews(approvals)
}

func (s *ReviewService) referenceReviews(approvals domain.ApprovalMap) ([]domain.Review, error) {
	items, err := s.reference()
	if err != nil {
		return nil, err
	}
	return NormalizeHostaway(items, approvals), nil
}
