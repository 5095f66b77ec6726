package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flex_reviews/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo is the Approval Store. Every method is a single statement; there are no
// multi-step transactions.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// EnsureSchema creates the approvals table when it does not exist yet.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createApprovalsSQL); err != nil {
		return fmt.Errorf("create approvals table: %w", err)
	}
	return nil
}

// UpsertApproval inserts or overwrites the row for a.ReviewID. Concurrent writes to the
// same id are last-write-wins.
func (r *Repo) UpsertApproval(ctx context.Context, a domain.Approval) error {
	_, err := r.db.ExecContext(ctx, upsertApprovalSQL,
		a.ReviewID,
		a.Approved,
		a.Channel,
		valStr(a.ListingID),
	)
	if err != nil {
		return fmt.Errorf("upsert approval %s: %w", a.ReviewID, err)
	}
	return nil
}

func (r *Repo) ApprovalsMap(ctx context.Context) (domain.ApprovalMap, error) {
	rows, err := r.db.QueryContext(ctx, approvalsMapSQL)
	if err != nil {
		return nil, fmt.Errorf("load approvals: %w", err)
	}
	defer rows.Close()

	out := domain.ApprovalMap{}
	for rows.Next() {
		var id string
		var approved bool
		if err := rows.Scan(&id, &approved); err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		out[id] = approved
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load approvals: %w", err)
	}
	return out, nil
}

func (r *Repo) GetApproval(ctx context.Context, reviewID string) (domain.Approval, error) {
	row := r.db.QueryRowContext(ctx, getApprovalSQL, reviewID)
	a, err := scanApproval(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Approval{}, domain.ErrNotFound
		}
		return domain.Approval{}, fmt.Errorf("get approval %s: %w", reviewID, err)
	}
	return a, nil
}

// ListApprovals returns every approval row, newest write first. An empty channel lists
// all channels.
func (r *Repo) ListApprovals(ctx context.Context, channel string) ([]domain.Approval, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if channel == "" {
		rows, err = r.db.QueryContext(ctx, listApprovalsSQL)
	} else {
		rows, err = r.db.QueryContext(ctx, listApprovalsByChannelSQL, channel)
	}
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()

	out := []domain.Approval{}
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	return out, nil
}

type scanner interface{ Scan(dest ...any) error }

func scanApproval(s scanner) (domain.Approval, error) {
	var a domain.Approval
	var listingID sql.NullString
	if err := s.Scan(&a.ReviewID, &a.Approved, &a.Channel, &listingID, &a.UpdatedAt); err != nil {
		return domain.Approval{}, err
	}
	if listingID.Valid {
		l := listingID.String
		a.ListingID = &l
	}
	return a, nil
}
