package query

import "strings"

// SortField is a single ORDER BY term.
type SortField struct {
	Field      string
	Descending bool
}

// ParseSortFields parses "name,-created_at" into sort fields. A leading
// "-" marks a descending field.
func ParseSortFields(s string) []SortField {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var fields []SortField
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		fields = append(fields, SortField{
			Field:      strings.TrimPrefix(part, "-"),
			Descending: desc,
		})
	}
	return fields
}
