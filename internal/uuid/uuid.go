// Package uuid provides a UUID that gin can bind from URI and query parameters.
package uuid

import (
	"fmt"

	google_uuid "github.com/google/uuid"
)

// UUID wraps google/uuid so that it implements gin's BindUnmarshaler.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam parses p with google/uuid. An empty string is the Nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return fmt.Errorf("'%s' is not a valid UUID: %w", p, err)
	}

	*u = UUID{parsed}
	return nil
}
