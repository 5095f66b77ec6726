package domain

import "context"

type ApprovalRepository interface {
	// Write path
	UpsertApproval(ctx context.Context, a Approval) error

	// Read paths
	ApprovalsMap(ctx context.Context) (ApprovalMap, error)
	GetApproval(ctx context.Context, reviewID string) (Approval, error)
	ListApprovals(ctx context.Context, channel string) ([]Approval, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
