package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuoteStatus represents the status of a price quote
type QuoteStatus int

const (
	QuoteStatusPending  QuoteStatus = 0
	QuoteStatusSent     QuoteStatus = 1
	QuoteStatusAccepted QuoteStatus = 2
	QuoteStatusDeclined QuoteStatus = 3
)

func (s QuoteStatus) String() string {
	names := [...]string{"Pending", "Sent", "Accepted", "Declined"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = QuoteStatusPending
	case "Sent":
		*s = QuoteStatusSent
	case "Accepted":
		*s = QuoteStatusAccepted
	case "Declined":
		*s = QuoteStatusDeclined
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
