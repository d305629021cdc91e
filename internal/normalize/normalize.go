package normalize

import (
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mrosetti/btcarb/internal/venues/kalshi"
	"github.com/mrosetti/btcarb/internal/venues/polymarket"
)

// DefaultKeywords are the asset keywords used to filter Polymarket events
// when the caller does not supply its own set.
var DefaultKeywords = []string{"btc", "bitcoin"}

// FromKalshi maps Kalshi markets 1:1 into normalized records. Kalshi quotes
// are already in cents; a 0-cent quote means an empty side of the book and
// maps to an absent price.
func FromKalshi(markets []kalshi.Market, fetchedAt time.Time) []Market {
	records := make([]Market, 0, len(markets))
	for i := range markets {
		m := &markets[i]
		records = append(records, Market{
			Venue:       VenueKalshi,
			DisplayKey:  m.Title,
			Identifier:  m.Ticker,
			YesAskCents: centsPrice(m.YesAsk),
			NoAskCents:  centsPrice(m.NoAsk),
			Volume:      float64(m.Volume),
			FetchedAt:   fetchedAt,
		})
	}
	return records
}

// FromPolymarket expands Polymarket events into one record per inner market.
// Events are filtered first: title or description must contain one of the
// asset keywords (case-insensitive). Outcome prices that fail to parse are
// left absent; they never default to zero.
func FromPolymarket(events []polymarket.Event, keywords []string, fetchedAt time.Time) []Market {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}

	var records []Market
	for i := range events {
		ev := &events[i]
		if !matchesKeywords(ev, keywords) {
			continue
		}
		for j := range ev.Markets {
			inner := &ev.Markets[j]
			yes, no := parseOutcomePrices(inner.OutcomePrices)
			records = append(records, Market{
				Venue:       VenuePolymarket,
				DisplayKey:  ev.Title,
				Identifier:  inner.ID,
				YesAskCents: yes,
				NoAskCents:  no,
				Volume:      ev.Volume,
				FetchedAt:   fetchedAt,
			})
		}
	}
	return records
}

func matchesKeywords(ev *polymarket.Event, keywords []string) bool {
	title := strings.ToLower(ev.Title)
	description := strings.ToLower(ev.Description)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if strings.Contains(title, kw) || strings.Contains(description, kw) {
			return true
		}
	}
	return false
}

// parseOutcomePrices decodes the Gamma outcomePrices field, a JSON-encoded
// array of decimal strings in [0,1] ordered [yes, no], and rescales to cents.
// Each element is parsed independently: a missing or malformed element leaves
// just that side absent.
func parseOutcomePrices(raw string) (yes, no *float64) {
	if raw == "" {
		return nil, nil
	}

	var elems []string
	err := json.Unmarshal([]byte(raw), &elems)
	if err != nil {
		return nil, nil
	}

	if len(elems) > 0 {
		yes = fractionToCents(elems[0])
	}
	if len(elems) > 1 {
		no = fractionToCents(elems[1])
	}
	return yes, no
}

func fractionToCents(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	cents := f * 100
	return &cents
}

// centsPrice converts a Kalshi cent quote to an optional price. Kalshi
// reports 0 when the book side is empty.
func centsPrice(v int64) *float64 {
	if v <= 0 {
		return nil
	}
	f := float64(v)
	return &f
}
