package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDayIndex(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		want    int
		wantErr bool
	}{
		{name: "bare int", raw: 2, want: 2},
		{name: "int64", raw: int64(7), want: 7},
		{name: "json number float", raw: float64(3), want: 3},
		{name: "numeric string", raw: "4", want: 4},
		{name: "day label", raw: "Day 2", want: 2},
		{name: "day label lower", raw: "day 5", want: 5},
		{name: "day label no space", raw: "Day3", want: 3},
		{name: "padded", raw: "  Day 1 ", want: 1},
		{name: "zero", raw: 0, wantErr: true},
		{name: "negative", raw: -1, wantErr: true},
		{name: "fractional", raw: 2.5, wantErr: true},
		{name: "garbage", raw: "Week 2", wantErr: true},
		{name: "empty string", raw: "", wantErr: true},
		{name: "nil", raw: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDayIndex(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDayIndex(%v) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDayIndex(%v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDayCompletionComplete(t *testing.T) {
	tests := []struct {
		name      string
		dc        DayCompletion
		totalDays int
		want      bool
	}{
		{name: "empty", dc: DayCompletion{}, totalDays: 3, want: false},
		{name: "partial", dc: DayCompletion{1: true, 3: true}, totalDays: 3, want: false},
		{name: "all", dc: DayCompletion{1: true, 2: true, 3: true}, totalDays: 3, want: true},
		{name: "day marked false", dc: DayCompletion{1: true, 2: false, 3: true}, totalDays: 3, want: false},
		{name: "extra days do not help", dc: DayCompletion{2: true, 3: true, 4: true}, totalDays: 3, want: false},
		{name: "zero total is never complete", dc: DayCompletion{}, totalDays: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dc.Complete(tt.totalDays); got != tt.want {
				t.Errorf("Complete(%d) = %v, want %v", tt.totalDays, got, tt.want)
			}
		})
	}
}

func TestDayCompletionWireFormat(t *testing.T) {
	// Stored rows use string keys "day_N"; both directions must keep that.
	dc := DayCompletion{1: true, 3: true}
	b, err := json.Marshal(dc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]bool
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal into raw map: %v", err)
	}
	if !raw["day_1"] || !raw["day_3"] || len(raw) != 2 {
		t.Errorf("wire form = %s, want day_1 and day_3 true", b)
	}

	var back DayCompletion
	if err := back.Scan(`{"day_1":true,"day_2":false,"day_3":true}`); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !back[1] || back[2] || !back[3] {
		t.Errorf("scanned = %v, want {1:true 2:false 3:true}", back)
	}

	var empty DayCompletion
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("scan nil = %v, want empty map", empty)
	}
}

func TestCountPlanDays(t *testing.T) {
	body := `# Alex's Strength Plan
## Client Profile
- goals

## Day 1: Push
### Warm-Up

## Day 2: Pull

## Day 3: Legs

## Additional Notes
`
	if got := CountPlanDays(body); got != 3 {
		t.Errorf("CountPlanDays = %d, want 3", got)
	}
	if got := CountPlanDays("no headers here"); got != 0 {
		t.Errorf("CountPlanDays(no headers) = %d, want 0", got)
	}
}

func TestPlanPinActive(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name string
		pin  *time.Time
		want bool
	}{
		{name: "no pin", pin: nil, want: false},
		{name: "active", pin: &future, want: true},
		{name: "expired", pin: &past, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Plan{PinnedUntil: tt.pin}
			if got := p.PinActive(now); got != tt.want {
				t.Errorf("PinActive = %v, want %v", got, tt.want)
			}
		})
	}
}
