// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value implements driver.Valuer. A nil document is stored as "{}".
func (s Settings) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("error encoding settings: %w", err)
	}
	return data, nil
}

// Scan implements sql.Scanner for JSON/JSONB columns.
func (s *Settings) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = Settings{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported settings column type %T", src)
	}

	decoded := Settings{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("error decoding settings: %w", err)
	}

	*s = decoded
	return nil
}
