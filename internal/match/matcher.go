// Package match pairs normalized records across venues that appear to
// reference the same real-world event.
package match

import (
	"strings"
	"time"

	"github.com/mrosetti/btcarb/internal/normalize"
	"go.uber.org/zap"
)

// minWordOverlap is the word-set intersection size that declares a match
// when neither key contains the other.
const minWordOverlap = 2

// Pair associates one Kalshi record with one Polymarket record believed to
// reference the same underlying event. Pairs carry no identity across runs;
// they are recomputed from display keys on every cycle.
type Pair struct {
	Kalshi     normalize.Market
	Polymarket normalize.Market
}

// Matcher finds cross-venue pairs by display-key similarity.
type Matcher struct {
	logger *zap.Logger
}

// New creates a new matcher.
func New(logger *zap.Logger) *Matcher {
	return &Matcher{logger: logger}
}

// Pairs compares every Kalshi record against every Polymarket record and
// returns each matching combination as an independent pair. The heuristic is
// deliberately permissive: a missed arbitrage is a lost opportunity, while a
// false match only costs one wasted evaluation. Records with no quoted side
// are excluded up front. Only identical (kalshi id, polymarket id)
// combinations are deduplicated.
func (m *Matcher) Pairs(kalshiRecords, polyRecords []normalize.Market) []Pair {
	start := time.Now()
	defer func() {
		MatchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	kalshiKeys := priceableKeys(kalshiRecords)
	polyKeys := priceableKeys(polyRecords)

	var pairs []Pair
	seen := make(map[string]struct{})

	for _, k := range kalshiKeys {
		for _, p := range polyKeys {
			if !keysMatch(k.key, k.words, p.key, p.words) {
				continue
			}

			dedupeKey := k.record.Identifier + "\x00" + p.record.Identifier
			if _, dup := seen[dedupeKey]; dup {
				continue
			}
			seen[dedupeKey] = struct{}{}

			pairs = append(pairs, Pair{Kalshi: *k.record, Polymarket: *p.record})
		}
	}

	PairsMatchedTotal.Add(float64(len(pairs)))
	m.logger.Debug("cross-venue-pairs-matched",
		zap.Int("kalshi-records", len(kalshiKeys)),
		zap.Int("polymarket-records", len(polyKeys)),
		zap.Int("pairs", len(pairs)))

	return pairs
}

// keyedRecord carries a record with its normalized key and word set so the
// nested loop does not re-tokenize on every comparison.
type keyedRecord struct {
	record *normalize.Market
	key    string
	words  map[string]struct{}
}

func priceableKeys(records []normalize.Market) []keyedRecord {
	keyed := make([]keyedRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		if !r.Priceable() {
			continue
		}
		key := normalizeKey(r.DisplayKey)
		keyed = append(keyed, keyedRecord{
			record: r,
			key:    key,
			words:  tokenize(key),
		})
	}
	return keyed
}

// keysMatch applies the matching rule: word-set overlap of at least
// minWordOverlap, or either key being a literal substring of the other.
func keysMatch(aKey string, aWords map[string]struct{}, bKey string, bWords map[string]struct{}) bool {
	overlap := 0
	for w := range aWords {
		if _, ok := bWords[w]; ok {
			overlap++
			if overlap >= minWordOverlap {
				return true
			}
		}
	}
	return strings.Contains(aKey, bKey) || strings.Contains(bKey, aKey)
}

func normalizeKey(key string) string {
	return strings.TrimSpace(strings.ToLower(key))
}

func tokenize(key string) map[string]struct{} {
	words := strings.Fields(key)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
