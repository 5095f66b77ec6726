package app

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/adapters/places"
	"flex_reviews/internal/domain"
)

const (
	hostawayTimeLayout = "2006-01-02 15:04:05"
	isoUTCLayout       = "2006-01-02T15:04:05Z"

	hostawayListingPrefix = "hostaway:"
	placesListingPrefix   = "places:"

	unknownListingName = "Unknown Listing"
	unknownPlaceName   = "Google Place"
	unknownPlaceID     = "unknown"
	unknownCategory    = "unknown"
	statusPublished    = "published"
)

/********** hostaway **********/

// NormalizeHostaway maps raw Hostaway items to canonical reviews, newest first.
// approvals may be nil.
func NormalizeHostaway(items []hostaway.RawReview, approvals domain.ApprovalMap) []domain.Review {
	out := make([]domain.Review, 0, len(items))
	for _, it := range items {
		out = append(out, mapHostaway(it, approvals))
	}
	sortNewestFirst(out)
	return out
}

func mapHostaway(it hostaway.RawReview, approvals domain.ApprovalMap) domain.Review {
	id := string(it.ID)
	name := it.ListingName
	if name == "" {
		name = unknownListingName
	}
	status := it.Status
	if status == "" {
		status = domain.StatusUnknown
	}
	return domain.Review{
		ReviewID:        id,
		ListingID:       hostawayListingPrefix + domain.Slugify(name),
		ListingName:     name,
		Channel:         domain.ChannelHostaway,
		Type:            normalizeType(it.Type),
		Status:          status,
		RatingOverall:   overallRating(it.Rating, it.ReviewCategory),
		CategoryRatings: categoryMap(it.ReviewCategory),
		TextPublic:      it.PublicReview,
		SubmittedAt:     hostawayTimestamp(it.SubmittedAt),
		AuthorName:      ptrStr(it.GuestName),
		Approved:        approvals[id],
	}
}

// overallRating prefers the top-level rating, then the mean of rated categories rounded to
// two decimals. Nil means the item carries no rating at all.
func overallRating(top *float64, cats []hostaway.RawCategory) *float64 {
	if top != nil {
		v := *top
		return &v
	}
	var sum float64
	var n int
	for _, c := range cats {
		if c.Rating == nil {
			continue
		}
		sum += *c.Rating
		n++
	}
	if n == 0 {
		return nil
	}
	avg := round2(sum / float64(n))
	return &avg
}

func categoryMap(cats []hostaway.RawCategory) map[string]float64 {
	out := make(map[string]float64, len(cats))
	for _, c := range cats {
		if c.Rating == nil {
			continue
		}
		name := c.Category
		if name == "" {
			name = unknownCategory
		}
		out[name] = *c.Rating
	}
	return out
}

func normalizeType(raw string) string {
	if raw == "" {
		return domain.TypeUnknown
	}
	return strings.ReplaceAll(raw, "-", "_")
}

// hostawayTimestamp re-emits the naive "YYYY-MM-DD HH:MM:SS" value as UTC ISO-8601.
// Anything else is passed through untouched and will fail date-range filters.
func hostawayTimestamp(raw string) string {
	t, err := time.ParseInLocation(hostawayTimeLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return raw
	}
	return t.UTC().Format(isoUTCLayout)
}

/********** places **********/

// NormalizePlaces maps a place's reviews to canonical reviews, newest first. A non-empty
// listingOverride replaces the generated "places:{place_id}" listing id. now stamps
// reviews that carry no time.
func NormalizePlaces(p places.Place, approvals domain.ApprovalMap, listingOverride string, now time.Time) []domain.Review {
	placeID := p.PlaceID
	if placeID == "" {
		placeID = unknownPlaceID
	}
	name := p.Name
	if name == "" {
		name = unknownPlaceName
	}
	listingID := listingOverride
	if listingID == "" {
		listingID = placesListingPrefix + placeID
	}

	out := make([]domain.Review, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		rawTime := "unknown"
		submitted := now.UTC().Format(isoUTCLayout)
		if r.Time != nil {
			rawTime = strconv.FormatInt(*r.Time, 10)
			submitted = time.Unix(*r.Time, 0).UTC().Format(isoUTCLayout)
		}
		id := placeID + ":" + rawTime

		var rating *float64
		if r.Rating != nil {
			v := *r.Rating * 2
			rating = &v
		}
		text := r.Text
		if text == "" && r.OriginalText != nil {
			text = r.OriginalText.Text
		}

		out = append(out, domain.Review{
			ReviewID:        id,
			ListingID:       listingID,
			ListingName:     name,
			Channel:         domain.ChannelGoogle,
			Type:            domain.TypeGuestToHost,
			Status:          statusPublished,
			RatingOverall:   rating,
			CategoryRatings: map[string]float64{},
			TextPublic:      ptrStr(text),
			SubmittedAt:     submitted,
			AuthorName:      ptrStr(r.AuthorName),
			Approved:        approvals[id],
		})
	}
	sortNewestFirst(out)
	return out
}

/********** tiny helpers **********/

// sortNewestFirst orders by submitted_at descending. The fixed ISO layout makes the
// string order chronological; equal timestamps keep input order.
func sortNewestFirst(rs []domain.Review) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].SubmittedAt > rs[j].SubmittedAt })
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
