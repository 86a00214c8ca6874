package differ

import (
	"fmt"
	"strconv"

	"github.com/x3t/openapi-diff/internal/equalutil"
)

// anyToString converts any value to a string representation
func anyToString(v any) string {
	switch val := v.(type) {
	case nil:
		return "none"
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// valuesEqual compares decoded YAML/JSON values.
func valuesEqual(a, b any) bool {
	return equalutil.EqualValues(a, b)
}
