package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PlanKind distinguishes the two structurally identical plan tables.
type PlanKind string

const (
	PlanGenerated PlanKind = "generated"
	PlanDemo      PlanKind = "demo"
)

func (k PlanKind) Valid() bool {
	return k == PlanGenerated || k == PlanDemo
}

// DemoPlanDays is the fixed length of a demo ("quick") plan. Generated plans
// derive their length from the plan body instead.
const DemoPlanDays = 3

// Plan is a generated or demo workout program belonging to a client. The body
// is markdown organized into "## Day N" sections.
type Plan struct {
	ID              int64         `db:"id" json:"id"`
	ClientID        int64         `db:"client_id" json:"clientId"`
	Name            string        `db:"name" json:"name"`
	Details         string        `db:"details" json:"details"`
	CompletedMarked bool          `db:"completed_marked" json:"completedMarked"`
	DayCompletion   DayCompletion `db:"day_completion_status" json:"dayCompletionStatus"`
	PinnedUntil     *time.Time    `db:"pinned_until" json:"pinnedUntil,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updatedAt"`

	// Denormalized on joined reads; empty otherwise.
	ClientFirstName string `db:"client_first_name" json:"clientFirstName,omitempty"`
	ClientLastName  string `db:"client_last_name" json:"clientLastName,omitempty"`
}

// TotalDays returns the plan's day count for the given kind. Demo plans are
// fixed at three days; generated plans count the "## Day" headers in the body.
func (p *Plan) TotalDays(kind PlanKind) int {
	if kind == PlanDemo {
		return DemoPlanDays
	}
	return CountPlanDays(p.Details)
}

// PinActive reports whether the plan is pinned for "today" as of now. Expired
// pins read as inactive without a write-back.
func (p *Plan) PinActive(now time.Time) bool {
	return p.PinnedUntil != nil && p.PinnedUntil.After(now)
}

// PinnedPlan is one entry of the "today's dashboard" feed: a plan with an
// active pin, tagged with the table it came from.
type PinnedPlan struct {
	Kind PlanKind `json:"planType"`
	Plan
}

// CountPlanDays counts distinct "## Day" section headers in a plan body.
// The stored plans are free-form model output, so this parse is inherently
// brittle; it matches how plans have always been sectioned.
func CountPlanDays(details string) int {
	count := 0
	for _, line := range strings.Split(details, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "## Day") {
			count++
		}
	}
	return count
}

// DayCompletion maps 1-based day indices to a done flag. The wire and column
// form is a JSON object with string keys "day_N", kept for compatibility with
// rows written before this representation was formalized.
type DayCompletion map[int]bool

// Complete reports whether every day in 1..totalDays is marked true.
func (d DayCompletion) Complete(totalDays int) bool {
	if totalDays <= 0 {
		return false
	}
	for i := 1; i <= totalDays; i++ {
		if !d[i] {
			return false
		}
	}
	return true
}

func (d DayCompletion) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, len(d))
	for day, done := range d {
		m[fmt.Sprintf("day_%d", day)] = done
	}
	return json.Marshal(m)
}

func (d *DayCompletion) UnmarshalJSON(b []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out := make(DayCompletion, len(m))
	for key, done := range m {
		idx, err := strconv.Atoi(strings.TrimPrefix(key, "day_"))
		if err != nil {
			return fmt.Errorf("malformed day completion key %q", key)
		}
		out[idx] = done
	}
	*d = out
	return nil
}

func (d DayCompletion) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DayCompletion) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = DayCompletion{}
		return nil
	case []byte:
		if len(v) == 0 {
			*d = DayCompletion{}
			return nil
		}
		return d.UnmarshalJSON(v)
	case string:
		if v == "" {
			*d = DayCompletion{}
			return nil
		}
		return d.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into DayCompletion", src)
	}
}

// ErrBadDayIndex is returned by ParseDayIndex for input that cannot be
// normalized to a day number.
var ErrBadDayIndex = errors.New("day index must be a positive integer or \"Day N\"")

// ParseDayIndex normalizes a day reference to a 1-based integer. Callers send
// either a bare number (2, "2") or the section label form ("Day 2").
func ParseDayIndex(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return checkDayIndex(v)
	case int64:
		return checkDayIndex(int(v))
	case float64:
		if v != float64(int(v)) {
			return 0, ErrBadDayIndex
		}
		return checkDayIndex(int(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, ErrBadDayIndex
		}
		return checkDayIndex(int(n))
	case string:
		s := strings.TrimSpace(v)
		if rest, ok := cutDayPrefix(s); ok {
			s = rest
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, ErrBadDayIndex
		}
		return checkDayIndex(n)
	default:
		return 0, ErrBadDayIndex
	}
}

func cutDayPrefix(s string) (string, bool) {
	if len(s) >= 3 && strings.EqualFold(s[:3], "day") {
		return s[3:], true
	}
	return s, false
}

func checkDayIndex(n int) (int, error) {
	if n < 1 {
		return 0, ErrBadDayIndex
	}
	return n, nil
}
