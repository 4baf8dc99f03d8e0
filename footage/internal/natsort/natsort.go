// Package natsort orders file paths the way a human reads them: digit runs
// compare as numbers (img2 before img10) and letter case is ignored.
package natsort

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Less reports whether a orders before b in case-insensitive natural order.
// Paths that differ only in case fall back to byte order so the result is
// deterministic.
func Less(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return a < b
	}
	return natural.Less(la, lb)
}

// Sort orders paths in place.
func Sort(paths []string) {
	sort.Slice(paths, func(i, j int) bool { return Less(paths[i], paths[j]) })
}
