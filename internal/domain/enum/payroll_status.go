package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PayrollStatus represents the processing state of a payroll run
type PayrollStatus int

const (
	PayrollStatusDraft     PayrollStatus = 0
	PayrollStatusProcessed PayrollStatus = 1
	PayrollStatusPaid      PayrollStatus = 2
)

func (s PayrollStatus) String() string {
	names := [...]string{"Draft", "Processed", "Paid"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

func (s PayrollStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PayrollStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PayrollStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = PayrollStatusDraft
	case "Processed":
		*s = PayrollStatusProcessed
	case "Paid":
		*s = PayrollStatusPaid
	}
	return nil
}

func (s PayrollStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PayrollStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PayrollStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PayrollStatus(v)
	case int:
		*s = PayrollStatus(v)
	}
	return nil
}
