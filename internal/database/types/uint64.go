package db_types

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
)

// Uint64 is stored as 8 big-endian bytes because sqlite integers are signed.
type Uint64 uint64

func (u *Uint64) Scan(value any) error {
	if value == nil {
		*u = 0
		return nil
	}

	switch v := value.(type) {
	case []byte:
		if len(v) != 8 {
			return fmt.Errorf("failed to scan Uint64: expected 8 bytes, got %d", len(v))
		}
		*u = Uint64(binary.BigEndian.Uint64(v))
		return nil
	case int64:
		if v < 0 {
			return fmt.Errorf("failed to scan Uint64: negative value %d", v)
		}
		*u = Uint64(v)
		return nil
	default:
		return fmt.Errorf("failed to scan Uint64: unsupported type %T", value)
	}
}

func (u Uint64) Value() (driver.Value, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(u))
	return b, nil
}
