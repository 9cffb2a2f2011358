package stringsutil

import "strings"

// SplitAndTrim splits a comma-separated value, trims each part and drops
// empty entries. Used for list-valued env vars like CORS_ORIGINS.
func SplitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
