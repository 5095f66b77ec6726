package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

const defaultApprovalChannel = string(domain.ChannelHostaway)

// ApproveRequest is the body of an approval decision. Approved is a pointer so that an
// omitted flag is rejected instead of being read as false.
type ApproveRequest struct {
	ReviewID  string  `json:"review_id" validate:"required,max=191"`
	Approved  *bool   `json:"approved" validate:"required"`
	Channel   string  `json:"channel" validate:"omitempty,max=32"`
	ListingID *string `json:"listing_id" validate:"omitempty,max=255"`
}

type ApprovalService struct {
	repo     domain.ApprovalRepository
	validate *validator.Validate
}

func NewApprovalService(r domain.ApprovalRepository) *ApprovalService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ApprovalService{repo: r, validate: v}
}

// Approve validates req and upserts the decision. Validation failures wrap
// domain.ErrInvalid and never reach the store.
func (s *ApprovalService) Approve(ctx context.Context, req ApproveRequest) error {
	req.ReviewID = strings.TrimSpace(req.ReviewID)
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalid, describe(err))
	}
	channel := req.Channel
	if channel == "" {
		channel = defaultApprovalChannel
	}
	a := domain.Approval{
		ReviewID:  req.ReviewID,
		Approved:  *req.Approved,
		Channel:   channel,
		ListingID: req.ListingID,
	}
	if err := s.repo.UpsertApproval(ctx, a); err != nil {
		return err
	}
	observability.ObserveApproval(channel, a.Approved)
	log.Info().
		Str("review_id", a.ReviewID).
		Bool("approved", a.Approved).
		Str("channel", channel).
		Msg("approval saved")
	return nil
}

// List returns stored approvals, newest first; empty channel lists all.
func (s *ApprovalService) List(ctx context.Context, channel string) ([]domain.Approval, error) {
	return s.repo.ListApprovals(ctx, strings.TrimSpace(channel))
}

// Import applies many decisions with at most workers concurrent writes and reports how
// many were rejected or failed. It only returns an error when ctx ends first.
func (s *ApprovalService) Import(ctx context.Context, reqs []ApproveRequest, workers int) (int, error) {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed int64

	for i := range reqs {
		req := reqs[i]
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return int(atomic.LoadInt64(&failed)), err
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return int(atomic.LoadInt64(&failed)), err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.Approve(ctx, req); err != nil {
				atomic.AddInt64(&failed, 1)
				log.Warn().Err(err).Str("review_id", req.ReviewID).Msg("approval import failed")
			}
		}()
	}
	wg.Wait()
	return int(atomic.LoadInt64(&failed)), nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			parts = append(parts, e.Field()+" is required")
		case "max":
			parts = append(parts, e.Field()+" must be at most "+e.Param()+" characters")
		default:
			parts = append(parts, e.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
