package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

func TestApprove_RoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewApprovalService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Approve(ctx, app.ApproveRequest{ReviewID: "7", Approved: ptr(true)}))
	m, _ := repo.ApprovalsMap(ctx)
	assert.Equal(t, true, m["7"])

	row, err := repo.GetApproval(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "hostaway", row.Channel, "channel defaults to hostaway")
	assert.Nil(t, row.ListingID)

	require.NoError(t, svc.Approve(ctx, app.ApproveRequest{
		ReviewID: "7", Approved: ptr(false), Channel: "google", ListingID: ptr("places:abc"),
	}))
	m, _ = repo.ApprovalsMap(ctx)
	assert.Equal(t, false, m["7"])
	row, _ = repo.GetApproval(ctx, "7")
	assert.Equal(t, "google", row.Channel)
	assert.Equal(t, "places:abc", *row.ListingID)
}

func TestApprove_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewApprovalService(repo)
	ctx := context.Background()

	req := app.ApproveRequest{ReviewID: "7", Approved: ptr(true), ListingID: ptr("hostaway:x")}
	require.NoError(t, svc.Approve(ctx, req))
	first, _ := repo.ApprovalsMap(ctx)
	require.NoError(t, svc.Approve(ctx, req))
	second, _ := repo.ApprovalsMap(ctx)
	assert.Equal(t, first, second)
}

func TestApprove_ValidationRejectsBeforeStore(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewApprovalService(repo)
	ctx := context.Background()

	cases := map[string]app.ApproveRequest{
		"missing review id": {Approved: ptr(true)},
		"blank review id":   {ReviewID: "   ", Approved: ptr(true)},
		"missing approved":  {ReviewID: "7"},
		"channel too long":  {ReviewID: "7", Approved: ptr(true), Channel: fmt.Sprintf("%040d", 0)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			err := svc.Approve(ctx, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalid)
		})
	}
	assert.Zero(t, repo.writes)

	err := svc.Approve(ctx, app.ApproveRequest{})
	assert.Contains(t, err.Error(), "review_id is required")
	assert.Contains(t, err.Error(), "approved is required")
}

func TestApprove_StoreErrorPropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.failPut = errors.New("db down")
	err := app.NewApprovalService(repo).Approve(context.Background(), app.ApproveRequest{ReviewID: "1", Approved: ptr(true)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalid)
}

func TestImport_BoundedWorkers(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewApprovalService(repo)

	var reqs []app.ApproveRequest
	for i := 0; i < 50; i++ {
		reqs = append(reqs, app.ApproveRequest{ReviewID: fmt.Sprint(i), Approved: ptr(i%2 == 0)})
	}
	reqs = append(reqs, app.ApproveRequest{ReviewID: "bad"}) // missing approved

	failed, err := svc.Import(context.Background(), reqs, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	m, _ := repo.ApprovalsMap(context.Background())
	assert.Len(t, m, 50)
	assert.True(t, m["0"])
	assert.False(t, m["1"])
}

func TestImport_CanceledContext(t *testing.T) {
	svc := app.NewApprovalService(newFakeRepo())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Import(ctx, []app.ApproveRequest{{ReviewID: "1", Approved: ptr(true)}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestList_FiltersChannel(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewApprovalService(repo)
	ctx := context.Background()
	require.NoError(t, svc.Approve(ctx, app.ApproveRequest{ReviewID: "1", Approved: ptr(true)}))
	require.NoError(t, svc.Approve(ctx, app.ApproveRequest{ReviewID: "g:1", Approved: ptr(true), Channel: "google"}))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	g, err := svc.List(ctx, " google ")
	require.NoError(t, err)
	require.Len(t, g, 1)
	assert.Equal(t, "g:1", g[0].ReviewID)
}
