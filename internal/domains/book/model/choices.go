package model

import (
	"strconv"
	"strings"
)

// Choice is one option of a reference select box.
type Choice struct {
	ID    int64
	Label string
}

// Choices are the authors, publishers and friends a book form may reference.
type Choices struct {
	Authors    []Choice
	Publishers []Choice
	Friends    []Choice
}

func ids(list []Choice) map[int64]bool {
	out := make(map[int64]bool, len(list))
	for _, c := range list {
		out[c.ID] = true
	}
	return out
}

// ResolveLabel maps a spreadsheet cell to an id string: numeric cells pass
// through, anything else is matched case-insensitively against labels.
// Unknown labels come back unchanged so validation reports them.
func ResolveLabel(list []Choice, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return raw
	}
	for _, c := range list {
		if strings.EqualFold(c.Label, raw) {
			return strconv.FormatInt(c.ID, 10)
		}
	}
	return raw
}
