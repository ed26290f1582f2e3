package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Category groups tours the way the site presents them. Merged catalog
// order is aquatic, adventure, walking.
type Category string

const (
	CategoryAquatic   Category = "aquatic"
	CategoryAdventure Category = "adventure"
	CategoryWalking   Category = "walking"
)

// PrivateTierUnavailable is the sentinel the fixture data uses in the
// privatetour column when a tour has no private option.
const PrivateTierUnavailable = "Not Applicable"

// PrivateTier resolves the privatetour column once at load time. The
// fixtures mix per-person amounts with the literal "Not Applicable", so the
// tier is either an amount or unavailable.
type PrivateTier struct {
	Available bool
	Price     float64
}

// UnmarshalJSON accepts either a number or the sentinel string.
func (p *PrivateTier) UnmarshalJSON(data []byte) error {
	var amount float64
	if err := json.Unmarshal(data, &amount); err == nil {
		p.Available = true
		p.Price = amount
		return nil
	}

	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}

	// Any non-numeric string means the tier is unavailable.
	if amount, err := strconv.ParseFloat(strings.TrimSpace(label), 64); err == nil {
		p.Available = true
		p.Price = amount
		return nil
	}

	p.Available = false
	p.Price = 0
	return nil
}

// MarshalJSON renders the tier the way the site data does: a number when
// available, the sentinel string otherwise.
func (p PrivateTier) MarshalJSON() ([]byte, error) {
	if !p.Available {
		return json.Marshal(PrivateTierUnavailable)
	}
	return json.Marshal(p.Price)
}

// Tour is a bookable guided activity from the tour catalogs.
type Tour struct {
	ID           string      `json:"id"`
	Name         string      `json:"tour"` // display name, also the lookup key
	RegularPrice float64     `json:"regulartour"`
	PrivateTier  PrivateTier `json:"privatetour"`
	Schedule     string      `json:"schedule"`
	Duration     string      `json:"duration"`
	MinAge       string      `json:"minage"`
	Includes     string      `json:"tourincludes"`
	Description  string      `json:"description"`
	Category     Category    `json:"category"`
}

// ScheduleDelimiter separates time labels in the schedule column.
const ScheduleDelimiter = " | "

// ScheduleSlots splits the schedule string into its ordered time labels.
// Duplicates in the source data are preserved.
func (t Tour) ScheduleSlots() []string {
	if t.Schedule == "" {
		return nil
	}

	parts := strings.Split(t.Schedule, ScheduleDelimiter)
	slots := make([]string, 0, len(parts))
	for _, part := range parts {
		slots = append(slots, strings.TrimSpace(part))
	}
	return slots
}

// Transfer route categories, used only for grouping in display.
const (
	TransferTypeLocal      = "Local"
	TransferTypeConnection = "Connection"
)

// TransferPrices is the flat-rate table keyed by guest-count bucket.
type TransferPrices struct {
	UpTo4  float64 `json:"1_4"`
	UpTo9  float64 `json:"5_9"`
	UpTo15 float64 `json:"9_15"`
}

// ForGuests picks the flat rate for a guest count. The count is bucketed,
// not multiplied: everyone in a bucket pays the same group rate.
func (p TransferPrices) ForGuests(n int) float64 {
	switch {
	case n <= 4:
		return p.UpTo4
	case n <= 9:
		return p.UpTo9
	default:
		return p.UpTo15
	}
}

// BucketLabel returns the fixture key of the bucket a guest count falls in.
func (p TransferPrices) BucketLabel(n int) string {
	switch {
	case n <= 4:
		return "1_4"
	case n <= 9:
		return "5_9"
	default:
		return "9_15"
	}
}

// TransferRoute is a point-to-point private transport route priced as a
// flat group rate by guest-count bucket.
type TransferRoute struct {
	ID     string         `json:"id"`
	Route  string         `json:"route"` // display name, also the lookup key
	Type   string         `json:"type"`
	Prices TransferPrices `json:"prices"`
}
