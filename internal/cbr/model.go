package cbr

import (
	"encoding/json"
	"time"

	"github.com/nais/cbr-convert/internal/currency"
)

// latestResponse keeps the metadata raw: only rates decide whether a
// response is usable.
type latestResponse struct {
	Date      json.RawMessage            `json:"date"`
	Timestamp json.RawMessage            `json:"timestamp"`
	Base      json.RawMessage            `json:"base"`
	Rates     map[string]json.RawMessage `json:"rates"`
}

// Snapshot is one daily publication of rates. Date and Timestamp are left zero
// when the upstream value is missing or of an unexpected type; Base then falls
// back to currency.Base.
type Snapshot struct {
	Date      string
	Timestamp time.Time
	Base      currency.Code
	Rates     currency.Rates
}

func (r latestResponse) date() string {
	var date string
	if json.Unmarshal(r.Date, &date) != nil {
		return ""
	}
	return date
}

func (r latestResponse) timestamp() time.Time {
	var ts int64
	if json.Unmarshal(r.Timestamp, &ts) != nil || ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func (r latestResponse) base() currency.Code {
	var base string
	if json.Unmarshal(r.Base, &base) != nil || base == "" {
		return currency.Base
	}
	return currency.Code(base)
}
