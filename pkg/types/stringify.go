package domain

import (
	"encoding/json"
	"strconv"
)

// Stringify renders a JSON-decoded scalar as a string for case-insensitive
// attribute comparison. Whole-number floats render without a decimal part so
// a bag value decoded as 256.0 still matches the string "256". Non-scalar
// values render empty.
func Stringify(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case json.Number:
		return n.String()
	default:
		return ""
	}
}
