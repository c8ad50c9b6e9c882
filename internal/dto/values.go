package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// FormValue is a loosely typed JSON scalar: strings are taken as-is and numbers
// keep their literal text, mirroring what an HTML form would submit.
type FormValue string

// UnmarshalJSON accepts a JSON string or number.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	*v = FormValue(n.String())
	return nil
}

// Date is a calendar date serialized as YYYY-MM-DD.
type Date time.Time

// MarshalJSON renders the date without a time component.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(DateLayout))
}

// UnmarshalJSON parses a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}
