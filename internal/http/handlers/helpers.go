package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

func parsePositiveInt64(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("not a positive integer: %q", raw)
	}
	return id, nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }
