package polymarket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const eventsJSON = `[
	{
		"id": "evt-1",
		"title": "Bitcoin price on June 30?",
		"slug": "bitcoin-price-june-30",
		"volume": 250000,
		"markets": [
			{
				"id": "mkt-1",
				"question": "Above 100k?",
				"outcomePrices": "[\"0.42\", \"0.58\"]"
			},
			{
				"id": "mkt-2",
				"question": "Above 110k?",
				"outcomePrices": "[\"0.15\", \"0.85\"]"
			}
		]
	}
]`

func TestFetchCryptoEvents(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(eventsJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	events, err := c.FetchCryptoEvents(context.Background(), 100)
	if err != nil {
		t.Fatalf("FetchCryptoEvents: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	ev := events[0]
	if ev.ID != "evt-1" {
		t.Errorf("ID = %q", ev.ID)
	}
	if ev.Title != "Bitcoin price on June 30?" {
		t.Errorf("Title = %q", ev.Title)
	}
	if ev.Volume != 250000 {
		t.Errorf("Volume = %v", ev.Volume)
	}
	if len(ev.Markets) != 2 {
		t.Fatalf("expected 2 nested markets, got %d", len(ev.Markets))
	}
	if ev.Markets[0].OutcomePrices != `["0.42", "0.58"]` {
		t.Errorf("OutcomePrices = %q, want the raw JSON string", ev.Markets[0].OutcomePrices)
	}

	for _, want := range []string{
		"tag_id=21",
		"related_tags=true",
		"active=true",
		"closed=false",
		"limit=100",
		"order=volume24hr",
		"ascending=false",
	} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestFetchCryptoEvents_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	events, err := c.FetchCryptoEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchCryptoEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestFetchCryptoEvents_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	_, err := c.FetchCryptoEvents(context.Background(), 10)
	if err == nil {
		t.Error("expected error for enveloped body; Gamma returns a direct array")
	}
}

func TestFetchCryptoEvents_ClientErrorDoesNotRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	_, err := c.FetchCryptoEvents(context.Background(), 10)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls != 1 {
		t.Errorf("expected single attempt, got %d", calls)
	}
}

func TestFetchCryptoEvents_RetriesOnTooManyRequests(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	_, err := c.FetchCryptoEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchCryptoEvents: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected retry after 429, got %d attempts", calls)
	}
}
