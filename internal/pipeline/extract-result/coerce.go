package extractresult

import (
	"math"
	"strconv"
	"strings"

	"truecheck/internal/models"
)

// coerceStatus accepts the three status labels in any case; anything else,
// including a missing field, becomes "error".
func coerceStatus(v interface{}) models.Status {
	s, ok := v.(string)
	if !ok {
		return models.StatusError
	}
	switch st := models.Status(strings.ToLower(strings.TrimSpace(s))); st {
	case models.StatusValid, models.StatusInvalid, models.StatusError:
		return st
	}
	return models.StatusError
}

// coerceVeracity accepts JSON booleans as well as the three labels.
func coerceVeracity(v interface{}) models.Veracity {
	switch val := v.(type) {
	case bool:
		if val {
			return models.VeracityTrue
		}
		return models.VeracityFalse
	case string:
		switch ver := models.Veracity(strings.ToLower(strings.TrimSpace(val))); ver {
		case models.VeracityTrue, models.VeracityFalse, models.VeracityUncertain:
			return ver
		}
	}
	return models.VeracityUncertain
}

// coerceConfidence accepts numbers and numeric strings. Values in (1, 100]
// are read as percentages; the result is clamped to [0, 1].
func coerceConfidence(v interface{}) float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(val), "%"), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f > 1 && f <= 100 {
		f /= 100
	}
	return math.Min(f, 1)
}

func coerceString(v interface{}, def string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// coerceDetails keeps an object as-is and replaces anything else with {}.
func coerceDetails(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}
