package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// JournalStatus represents the posting state of a journal entry.
// Only draft entries are editable; posted entries can only be reversed.
type JournalStatus int

const (
	JournalStatusDraft    JournalStatus = 0
	JournalStatusPosted   JournalStatus = 1
	JournalStatusReversed JournalStatus = 2
)

func (s JournalStatus) String() string {
	names := [...]string{"Draft", "Posted", "Reversed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

func (s JournalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *JournalStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = JournalStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = JournalStatusDraft
	case "Posted":
		*s = JournalStatusPosted
	case "Reversed":
		*s = JournalStatusReversed
	}
	return nil
}

func (s JournalStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *JournalStatus) Scan(value interface{}) error {
	if value == nil {
		*s = JournalStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = JournalStatus(v)
	case int:
		*s = JournalStatus(v)
	}
	return nil
}
