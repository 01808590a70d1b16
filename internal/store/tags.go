package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// NormalizeTags turns the raw multipart "tags" field into a tag list.
// Clients send it three ways: repeated form values, a JSON array in a
// single value, or a comma-separated string. A single value holding valid
// JSON that is not an array yields no tags at all.
func NormalizeTags(values []string) []string {
	switch len(values) {
	case 0:
		return []string{}
	case 1:
	default:
		return values
	}

	raw := values[0]

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return lo.FilterMap(strings.Split(raw, ","), func(tag string, _ int) (string, bool) {
			tag = strings.TrimSpace(tag)
			return tag, tag != ""
		})
	}

	items, ok := parsed.([]any)
	if !ok {
		return []string{}
	}
	return lo.Map(items, func(item any, _ int) string {
		if s, ok := item.(string); ok {
			return s
		}
		return fmt.Sprint(item)
	})
}
