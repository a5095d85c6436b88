package laborhours

import (
	"strings"
	"time"
)

// 受け付ける日付書式（先頭から順に試す）
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// parseDate: 失敗時は ok=false（エラーは返さない）
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate returns the YYYY-MM-DD form of s, or "" when s cannot be parsed.
func NormalizeDate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return ""
	}
	return t.Format(DateLayout)
}
