package generate

import (
	"strings"
	"time"
)

// themeLabels maps rotation short codes to descriptive theme names.
// Unrecognized codes pass through unchanged.
var themeLabels = map[string]string{
	"work": "Office Communication",
	"life": "Daily Life",
	"tech": "Technology & Development",
}

// SelectTheme picks the theme for a given day: day-of-month modulo the
// rotation length. The cycle re-anchors every calendar month, so day 1 always
// maps to the same entry.
func SelectTheme(day time.Time, rotation []string) string {
	if len(rotation) == 0 {
		return ""
	}

	code := strings.TrimSpace(rotation[day.Day()%len(rotation)])
	if label, ok := themeLabels[code]; ok {
		return label
	}
	return code
}
