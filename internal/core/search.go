package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// filter keeps the items where any field contains term under Unicode case
// folding. A blank term keeps everything.
func filter[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.TrimSpace(term)
	if term == "" {
		return items
	}
	folder := cases.Fold()
	needle := folder.String(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(folder.String(f), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
