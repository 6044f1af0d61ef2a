package wavefront

import (
	"errors"
	"math"
	"strconv"
)

var nan32 = float32(math.NaN())

// parseFloat32 mirrors a permissive float parse: syntax errors give NaN,
// out of range values saturate to ±Inf without error.
func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nan32, err
	}
	return float32(v), nil
}

// parseFloats converts every field. ok is false when at least one field was
// not numeric; the matching slots hold NaN.
func parseFloats(fields []string) (values []float32, bad string, ok bool) {
	values = make([]float32, len(fields))
	ok = true
	for i, f := range fields {
		v, err := parseFloat32(f)
		if err != nil && ok {
			bad = f
			ok = false
		}
		values[i] = v
	}
	return values, bad, ok
}

func isNaN(f float32) bool {
	return math.IsNaN(float64(f))
}
