package polymarket

// Event represents an event from the Gamma API /events endpoint.
// One event groups one or more markets sharing a real-world outcome.
type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Slug        string        `json:"slug"`
	Volume      float64       `json:"volume"`
	Volume24Hr  float64       `json:"volume24hr"`
	Liquidity   float64       `json:"liquidity"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Markets     []EventMarket `json:"markets"`
}

// EventMarket is a single market nested inside an event.
// OutcomePrices arrives as a JSON-encoded array of decimal strings in
// [0,1], ordered [yes, no], e.g. "[\"0.42\", \"0.58\"]".
type EventMarket struct {
	ID            string `json:"id"`
	Question      string `json:"question"`
	ConditionID   string `json:"conditionId"`
	OutcomePrices string `json:"outcomePrices"`
}
