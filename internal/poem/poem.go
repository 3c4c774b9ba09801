// Package poem defines the poem content the composition renders and a
// small built-in anthology used when no external provider is configured.
package poem

import "strings"

// Poem is one piece of pre-normalized poem content.
// Title and Author may be empty.
type Poem struct {
	MainText string
	Title    string
	Author   string
}

// IsZero reports whether the poem has no content.
func (p Poem) IsZero() bool {
	return strings.TrimSpace(p.MainText) == ""
}
