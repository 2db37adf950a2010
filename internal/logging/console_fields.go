package logging

import (
	"log/slog"
	"strings"
)

type infoField struct {
	label string
	value string
}

const infoAttrLimit = 10

// infoHighlightKeys are listed first, in this order, on info lines.
var infoHighlightKeys = []string{
	FieldEventType,
	FieldErrorCode,
	FieldErrorHint,
	FieldImpact,
	"error",
	FieldWebinarID,
	"cues",
	"drafts",
	"method",
	"coverage_ratio",
	"unmatched_core_script_tokens",
	"avg_cps",
	"max_cps",
	"cps_overflows",
	"line_overflows",
	"status",
	"reason",
}

// selectInfoFields returns formatted info-level fields and a count of hidden
// entries. limit=0 means no limit.
func selectInfoFields(attrs []kv, limit int) ([]infoField, int) {
	if len(attrs) == 0 {
		return nil, 0
	}
	used := make([]bool, len(attrs))
	result := make([]infoField, 0, infoAttrLimit)
	hidden := 0

	add := func(idx int) {
		used[idx] = true
		key := attrs[idx].key
		if skipInfoKey(key) {
			return
		}
		if isDebugOnlyKey(key) {
			hidden++
			return
		}
		val := formatValueForKey(key, attrs[idx].value)
		if key != "error" && len(val) > 120 {
			hidden++
			return
		}
		if limit > 0 && len(result) >= limit {
			hidden++
			return
		}
		result = append(result, infoField{label: displayLabel(key), value: val})
	}

	for _, key := range infoHighlightKeys {
		for idx, attr := range attrs {
			if !used[idx] && attr.key == key {
				add(idx)
				break
			}
		}
	}
	for idx := range attrs {
		if !used[idx] {
			add(idx)
		}
	}
	return result, hidden
}

func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	switch {
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	case strings.HasSuffix(key, "_ratio") && v.Kind() == slog.KindFloat64:
		return formatPercent(v.Float64())
	case strings.HasSuffix(key, "_sec") && v.Kind() == slog.KindFloat64:
		return formatSeconds(v.Float64())
	}
	value := formatValue(v)
	if key == "error" && len(value) > 200 {
		value = value[:200] + "…"
	}
	return value
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldComponent, FieldRunID, FieldStage:
		return true
	default:
		return false
	}
}

func isDebugOnlyKey(key string) bool {
	if key == FieldCorrelationID || strings.Contains(key, "correlation") {
		return true
	}
	return strings.Contains(key, "_path") || strings.Contains(key, "_dir")
}

func displayLabel(key string) string {
	switch key {
	case FieldEventType:
		return "Event"
	case FieldErrorCode:
		return "Error Code"
	case FieldErrorHint:
		return "Hint"
	case FieldWebinarID:
		return "Webinar"
	case "coverage_ratio":
		return "Coverage"
	case "unmatched_core_script_tokens":
		return "Unmatched"
	case "avg_cps":
		return "Avg CPS"
	case "max_cps":
		return "Max CPS"
	case "cps_overflows":
		return "CPS Overflows"
	default:
		return titleizeKey(key)
	}
}

func titleizeKey(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		parts[i] = capitalizeASCII(part)
	}
	return strings.Join(parts, " ")
}

func capitalizeASCII(value string) string {
	switch len(value) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(value)
	default:
		lower := strings.ToLower(value)
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
}
