package breakdown

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mohammad-safakhou/breakdown/internal/helpers"
)

// MicroTask is one normalized checklist entry. Every field is always present
// and type-correct, whatever the model returned.
type MicroTask struct {
	ID            int    `json:"id"`
	Text          string `json:"text"`
	EstimatedTime int    `json:"estimatedTime"`
	Priority      string `json:"priority"`
	DependsOn     []int  `json:"dependsOn"`
}

const (
	maxTasks       = 20
	minMinutes     = 10
	maxMinutes     = 180
	defaultMinutes = 30

	untitledTask = "Untitled task"
)

// NormalizeTasks turns raw model output into a clean micro-task list. It
// never fails: unparseable output yields an empty list, and each entry is
// normalized independently so one malformed task cannot poison the rest.
func NormalizeTasks(raw string) []MicroTask {
	payload := decodeLoose(raw)
	items, ok := payload["tasks"].([]any)
	if !ok {
		return []MicroTask{}
	}
	if len(items) > maxTasks {
		items = items[:maxTasks]
	}

	out := make([]MicroTask, 0, len(items))
	for i, item := range items {
		entry, _ := item.(map[string]any)
		out = append(out, MicroTask{
			ID:            i + 1,
			Text:          normalizeText(entry["text"]),
			EstimatedTime: normalizeMinutes(entry["estimatedTimeMinutes"]),
			Priority:      normalizePriority(entry["priority"]),
			DependsOn:     normalizeDependsOn(entry["dependsOn"]),
		})
	}
	return out
}

// decodeLoose tries the whole text as JSON, then the first fenced code block,
// then the first balanced brace-delimited substring. First success wins;
// total failure means no structured output, reported as an empty map.
func decodeLoose(raw string) map[string]any {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return payload
	}
	if inner, err := helpers.ExtractFencedBlock(raw); err == nil {
		if err := json.Unmarshal([]byte(inner), &payload); err == nil {
			return payload
		}
	}
	if inner, err := helpers.ExtractJSON(raw); err == nil {
		if err := json.Unmarshal([]byte(inner), &payload); err == nil {
			return payload
		}
	}
	return map[string]any{}
}

func normalizeText(v any) string {
	if t, ok := v.(string); ok {
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
	}
	return untitledTask
}

func normalizeMinutes(v any) int {
	n := math.NaN()
	switch t := v.(type) {
	case float64:
		n = t
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			n = parsed
		}
	}
	if math.IsNaN(n) {
		return defaultMinutes
	}
	minutes := int(math.Round(n))
	if minutes < minMinutes {
		return minMinutes
	}
	if minutes > maxMinutes {
		return maxMinutes
	}
	return minutes
}

func normalizePriority(v any) string {
	if s, ok := v.(string); ok {
		switch s {
		case "high", "medium", "low":
			return s
		}
	}
	return "medium"
}

// normalizeDependsOn keeps the field only when it is an array, coercing
// numeric elements to ints. Indices are deliberately not checked against the
// list's own bounds; they pass through as the model produced them.
func normalizeDependsOn(v any) []int {
	arr, ok := v.([]any)
	if !ok {
		return []int{}
	}
	deps := make([]int, 0, len(arr))
	for _, el := range arr {
		if n, ok := el.(float64); ok {
			deps = append(deps, int(n))
		}
	}
	return deps
}
