package catalog

import (
	"encoding/json"
	"testing"
)

func TestPrivateTierUnmarshal(t *testing.T) {
	tests := []struct {
		raw       string
		available bool
		price     float64
	}{
		{`80`, true, 80},
		{`125.5`, true, 125.5},
		{`"95"`, true, 95},
		{`"Not Applicable"`, false, 0},
		{`"N/A"`, false, 0},
	}

	for _, tt := range tests {
		var tier PrivateTier
		if err := json.Unmarshal([]byte(tt.raw), &tier); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.raw, err)
		}
		if tier.Available != tt.available || tier.Price != tt.price {
			t.Errorf("unmarshal %s = %+v, want available=%v price=%.2f", tt.raw, tier, tt.available, tt.price)
		}
	}
}

func TestPrivateTierMarshalRoundTrip(t *testing.T) {
	out, err := json.Marshal(PrivateTier{Available: false})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"Not Applicable"` {
		t.Errorf("unavailable tier marshals to %s", out)
	}

	out, err = json.Marshal(PrivateTier{Available: true, Price: 80})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `80` {
		t.Errorf("available tier marshals to %s", out)
	}
}

func TestScheduleSlots(t *testing.T) {
	tour := Tour{Schedule: "7:30 AM | 9:00 AM | 1:00 PM"}
	slots := tour.ScheduleSlots()
	want := []string{"7:30 AM", "9:00 AM", "1:00 PM"}
	if len(slots) != len(want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slots[%d] = %q, want %q", i, slots[i], want[i])
		}
	}

	if slots := (Tour{Schedule: "9:00 AM"}).ScheduleSlots(); len(slots) != 1 || slots[0] != "9:00 AM" {
		t.Errorf("single slot = %v", slots)
	}
	if slots := (Tour{}).ScheduleSlots(); slots != nil {
		t.Errorf("empty schedule = %v, want nil", slots)
	}
}

func TestTransferPricesForGuests(t *testing.T) {
	prices := TransferPrices{UpTo4: 35, UpTo9: 55, UpTo15: 75}

	tests := []struct {
		guests int
		want   float64
		bucket string
	}{
		{1, 35, "1_4"},
		{4, 35, "1_4"},
		{5, 55, "5_9"},
		{9, 55, "5_9"},
		{10, 75, "9_15"},
		{20, 75, "9_15"},
	}

	for _, tt := range tests {
		if got := prices.ForGuests(tt.guests); got != tt.want {
			t.Errorf("ForGuests(%d) = %.2f, want %.2f", tt.guests, got, tt.want)
		}
		if got := prices.BucketLabel(tt.guests); got != tt.bucket {
			t.Errorf("BucketLabel(%d) = %q, want %q", tt.guests, got, tt.bucket)
		}
	}
}
