package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

func sample() []domain.Review {
	return []domain.Review{
		{ReviewID: "a", ListingID: "hostaway:one", Type: "guest_to_host", Status: "published", RatingOverall: ptr(9.5), SubmittedAt: "2024-05-01T10:00:00Z", Approved: true},
		{ReviewID: "b", ListingID: "hostaway:one", Type: "host_to_guest", Status: "published", RatingOverall: ptr(8.0), SubmittedAt: "2024-03-01T00:00:00Z"},
		{ReviewID: "c", ListingID: "hostaway:two", Type: "guest_to_host", Status: "awaiting", RatingOverall: ptr(7.99), SubmittedAt: "2024-02-01T00:00:00Z", Approved: true},
		{ReviewID: "d", ListingID: "hostaway:two", Type: "guest_to_host", Status: "published", RatingOverall: nil, SubmittedAt: "2024-01-01T00:00:00Z"},
		{ReviewID: "e", ListingID: "hostaway:two", Type: "unknown", Status: "published", RatingOverall: ptr(10.0), SubmittedAt: "garbage"},
	}
}

func TestFilter_ZeroValueKeepsEverything(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(app.Filter{}.Apply(sample())))
}

func TestFilter_MinRatingExcludesNil(t *testing.T) {
	got := app.Filter{MinRating: ptr(8.0)}.Apply(sample())
	assert.Equal(t, []string{"a", "b", "e"}, ids(got))
}

func TestFilter_ExactMatches(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ids(app.Filter{ListingID: "hostaway:one"}.Apply(sample())))
	assert.Equal(t, []string{"b"}, ids(app.Filter{Type: "host_to_guest"}.Apply(sample())))
	assert.Equal(t, []string{"c"}, ids(app.Filter{Status: "awaiting"}.Apply(sample())))
	assert.Empty(t, app.Filter{ListingID: "hostaway:nope"}.Apply(sample()))
}

func TestFilter_ApprovedTriState(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, ids(app.Filter{Approved: ptr(true)}.Apply(sample())))
	assert.Equal(t, []string{"b", "d", "e"}, ids(app.Filter{Approved: ptr(false)}.Apply(sample())))
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	f := app.Filter{StartDate: "2024-02-01T00:00:00Z", EndDate: "2024-03-01T00:00:00+00:00"}
	// unparseable record timestamps are excluded once a bound is set
	assert.Equal(t, []string{"b", "c"}, ids(f.Apply(sample())))

	assert.Equal(t, []string{"a", "b"}, ids(app.Filter{StartDate: "2024-02-15"}.Apply(sample())))
	assert.Equal(t, []string{"c", "d"}, ids(app.Filter{EndDate: "2024-02-01T00:00:00"}.Apply(sample())))
	// offsets are honoured: 2024-03-01T01:00:00+01:00 is midnight UTC
	assert.Equal(t, []string{"b", "c", "d"}, ids(app.Filter{EndDate: "2024-03-01T01:00:00+01:00"}.Apply(sample())))
}

func TestFilter_MalformedDateIsIgnored(t *testing.T) {
	got := app.Filter{StartDate: "yesterday", EndDate: "31/12/2024"}.Apply(sample())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(got))

	// one good bound still applies
	got = app.Filter{StartDate: "nope", EndDate: "2024-01-01T00:00:00Z"}.Apply(sample())
	assert.Equal(t, []string{"d"}, ids(got))
}

func TestFilter_Combined(t *testing.T) {
	f := app.Filter{ListingID: "hostaway:two", MinRating: ptr(7.0), Approved: ptr(true), StartDate: "2024-01-15"}
	assert.Equal(t, []string{"c"}, ids(f.Apply(sample())))
}
