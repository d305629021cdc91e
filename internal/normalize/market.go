package normalize

import "time"

// Venue identifies one of the two prediction-market platforms.
type Venue string

const (
	VenueKalshi     Venue = "kalshi"
	VenuePolymarket Venue = "polymarket"
)

// Market is the common record shape both venues are normalized into.
// Ask prices are on the 0-100 cent scale; a nil price means the side is
// unquoted. Zero is a valid price and is never used to mean missing.
type Market struct {
	Venue       Venue     `json:"venue"`
	DisplayKey  string    `json:"display_key"`
	Identifier  string    `json:"identifier"`
	YesAskCents *float64  `json:"yes_ask_cents,omitempty"`
	NoAskCents  *float64  `json:"no_ask_cents,omitempty"`
	Volume      float64   `json:"volume"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Priceable reports whether the record carries at least one quoted side.
// Records with neither ask cannot be priced and are excluded from matching.
func (m *Market) Priceable() bool {
	return m.YesAskCents != nil || m.NoAskCents != nil
}
