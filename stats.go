package smartwallet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Palette is the fixed chart color palette. Order is significant: colors are
// assigned cyclically by position, so repeated renders of the same series are
// colored identically.
var Palette = []string{
	"#4E79A7", // blue
	"#F28E2B", // orange
	"#E15759", // red
	"#76B7B2", // teal
	"#59A14F", // green
	"#EDC948", // yellow
	"#B07AA1", // purple
	"#FF9DA7", // pink
	"#9C755F", // brown
	"#BAB0AC", // grey
}

// StatEntry is one labeled amount of a statistics mapping.
type StatEntry struct {
	Label  string
	Amount float64
}

// Mapping is an ordered sequence of label→amount pairs. The backend returns
// JSON objects; a plain Go map would lose the document's key order, which is
// needed for the stable sort tie-break below. UnmarshalJSON therefore walks
// the token stream instead.
type Mapping []StatEntry

// UnmarshalJSON decodes a JSON object into entries preserving key order.
// Duplicate keys keep the last value without changing the first position.
// A JSON null decodes to an empty Mapping, matching how the backend omits
// chart sections with no data.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*m = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("cannot decode stats mapping: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("cannot decode stats mapping: expected object, got %v", tok)
	}
	entries := make([]StatEntry, 0, 8)
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("cannot decode stats mapping key: %w", err)
		}
		key := keyTok.(string)
		var amount float64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("cannot decode amount for %q: %w", key, err)
		}
		if i, seen := index[key]; seen {
			entries[i].Amount = amount
			continue
		}
		index[key] = len(entries)
		entries = append(entries, StatEntry{Label: key, Amount: amount})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("cannot decode stats mapping: %w", err)
	}
	*m = entries
	return nil
}

// MarshalJSON encodes the mapping back as a JSON object in entry order.
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SeriesEntry is a StatEntry with its assigned display color.
type SeriesEntry struct {
	Label  string
	Amount float64
	Color  string
}

// ChartSeries is an ordered, colored sequence of entries ready for chart
// rendering. Ordering is descending by amount; ties keep the mapping's
// original key order.
type ChartSeries []SeriesEntry

// Total returns the sum of all amounts in the series.
func (s ChartSeries) Total() float64 {
	var t float64
	for _, e := range s {
		t += e.Amount
	}
	return t
}

// BehaviorEntry is one behavioral-tag amount with its width relative to the
// largest entry of the series.
type BehaviorEntry struct {
	Label        string
	Amount       float64
	WidthPercent Percent
}

// BehaviorTagSeries is a ChartSeries variant for behavioral spending tags:
// non-positive amounts are excluded and each entry carries a 0–100 width
// normalized against the maximum.
type BehaviorTagSeries []BehaviorEntry

// ToSeries converts a mapping into a chart series: entries sorted descending
// by amount (stable on the original order), each assigned
// Palette[(position+colorOffset) % len(Palette)]. The input is never mutated;
// an empty mapping yields an empty series.
func ToSeries(m Mapping, colorOffset int) ChartSeries {
	if len(m) == 0 {
		return ChartSeries{}
	}
	ordered := make([]StatEntry, len(m))
	copy(ordered, m)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Amount > ordered[j].Amount })

	series := make(ChartSeries, len(ordered))
	for i, e := range ordered {
		series[i] = SeriesEntry{
			Label:  e.Label,
			Amount: e.Amount,
			Color:  Palette[mod(i+colorOffset, len(Palette))],
		}
	}
	return series
}

// ToBehaviorSeries converts a mapping into a behavioral-tag series: entries
// with amount ≤ 0 are dropped, the rest sorted descending by amount, and each
// given a width percent of 100*amount/max. An empty (or fully filtered)
// mapping yields an empty series; there is no division by zero.
func ToBehaviorSeries(m Mapping) BehaviorTagSeries {
	kept := make([]StatEntry, 0, len(m))
	for _, e := range m {
		if e.Amount > 0 {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return BehaviorTagSeries{}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Amount > kept[j].Amount })

	max := kept[0].Amount
	series := make(BehaviorTagSeries, len(kept))
	for i, e := range kept {
		series[i] = BehaviorEntry{
			Label:        e.Label,
			Amount:       e.Amount,
			WidthPercent: Percent(100 * e.Amount / max),
		}
	}
	return series
}

// mod is a modulo that stays positive for negative offsets.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
