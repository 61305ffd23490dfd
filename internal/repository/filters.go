package repository

import "strings"

// wildcard reports whether a filter value means "no constraint".
func wildcard(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}
