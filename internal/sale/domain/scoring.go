package domain

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// ScorePoints recomputes a sale's expected points from its form answers and
// the active scoring rules. Matching is case-insensitive on the trimmed
// answer value.
func ScorePoints(answers datatypes.JSONMap, rules []ScoringRule) float64 {
	if len(answers) == 0 || len(rules) == 0 {
		return 0
	}

	var total float64
	for _, rule := range rules {
		raw, ok := answers[rule.Field]
		if !ok || raw == nil {
			continue
		}
		answer := strings.TrimSpace(fmt.Sprintf("%v", raw))
		if strings.EqualFold(answer, strings.TrimSpace(rule.Match)) {
			total += rule.Points
		}
	}
	return total
}

// AnswerString extracts a trimmed string answer for any of the given keys,
// first match wins.
func AnswerString(answers datatypes.JSONMap, keys ...string) string {
	for _, key := range keys {
		raw, ok := answers[key]
		if !ok || raw == nil {
			continue
		}
		if value := strings.TrimSpace(fmt.Sprintf("%v", raw)); value != "" {
			return value
		}
	}
	return ""
}
