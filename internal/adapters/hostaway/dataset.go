package hostaway

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/reviews.json
var referenceDataset []byte

// LoadReference decodes the bundled reference dataset used by "mock" mode and as the
// "auto" fallback.
func LoadReference() ([]RawReview, error) {
	var env envelope
	if err := json.Unmarshal(referenceDataset, &env); err != nil {
		return nil, fmt.Errorf("decode hostaway reference dataset: %w", err)
	}
	return env.Result, nil
}
