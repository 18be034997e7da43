package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON stores an opaque structured payload as a JSON column. It keeps the
// raw GLPI record available for audit and debugging without forcing the rest
// of the schema to model GLPI's field shapes.
type JSON map[string]any

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported type for JSON column: %T", value)
	}
}
