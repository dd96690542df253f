package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap stores an open, schema-less bag of values as a jsonb column —
// used for TaxProfile.AdditionalData (not-yet-promoted profile fields) and
// ObligationPeriodicity.NitScheduleJSON (digit -> due date).
type JSONMap map[string]interface{}

// Value implements driver.Valuer for GORM/jsonb serialization.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("model: JSONMap.Scan: unsupported type")
	}

	if len(raw) == 0 {
		*m = JSONMap{}
		return nil
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// StringList stores an ordered list of strings as a jsonb column — used
// for TaxProfile.EconomicActivities.
type StringList []string

// Value implements driver.Valuer for GORM/jsonb serialization.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal([]string(s))
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("model: StringList.Scan: unsupported type")
	}

	if len(raw) == 0 {
		*s = nil
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*s = out
	return nil
}
