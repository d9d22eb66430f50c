package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DocumentStatus is the lifecycle state of a sale, transfer or stock-out
type DocumentStatus string

const (
	StatusPending   DocumentStatus = "pending"
	StatusCompleted DocumentStatus = "completed"
	StatusCancelled DocumentStatus = "cancelled"
)

func (s DocumentStatus) String() string {
	return string(s)
}

// Valid reports whether s is a known status
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = DocumentStatus(str)
	return nil
}

func (s DocumentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *DocumentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = StatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = DocumentStatus(v)
	case []byte:
		*s = DocumentStatus(string(v))
	}
	return nil
}
