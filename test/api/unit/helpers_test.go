package unit

import (
	"errors"
	"strconv"
)

// errTestStore stands in for any unexpected persistence failure.
var errTestStore = errors.New("store unavailable")

func jsonNumber(id int64) string {
	return strconv.FormatInt(id, 10)
}
