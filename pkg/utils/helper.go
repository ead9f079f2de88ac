package utils

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set")

// ParseID converts a route parameter into a positive row id.
func ParseID(value string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("id is required")
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", value, err)
	}

	if id < 1 {
		return 0, fmt.Errorf("invalid id %q", value)
	}

	return id, nil
}
