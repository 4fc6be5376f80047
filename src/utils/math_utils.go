package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix matches the longest leading decimal literal of a string.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Placeholder values brokers send instead of an amount.
var numericSentinels = map[string]struct{}{
	"":          {},
	"TBC":       {},
	"Not Known": {},
}

// SafeParseNumber coerces a loosely typed broker value into a finite float.
// Sentinels, unparseable text and unsupported types all become 0.
func SafeParseNumber(value any) float64 {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		f = parseNumericPrefix(v)
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		f = parseNumericPrefix(v.String())
	case bool:
		if v {
			f = 1
		}
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseNumericPrefix(s string) float64 {
	if _, sentinel := numericSentinels[s]; sentinel {
		return 0
	}
	match := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Out of range literals report ±Inf with an error.
		return 0
	}
	return f
}

// SafeString renders a scalar broker value as text. nil becomes "".
func SafeString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// RoundFloat rounds a float64 to a specified number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// MinInt returns the smaller of two integers.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
