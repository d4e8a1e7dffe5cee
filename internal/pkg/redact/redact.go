// Package redact scrubs spoiler-marked text out of notification bodies.
package redact

import "strings"

// SpoilerPlaceholder replaces the whole body when spoiler markers are found.
// The literal is part of the wire contract consumed by push gateways.
const SpoilerPlaceholder = "(스포일러)"

// HasSpoiler reports whether s contains both an opening and a closing
// spoiler marker, in plain or escaped form. Markers do not need to be
// balanced or paired; any co-occurrence counts.
func HasSpoiler(s string) bool {
	open := strings.Contains(s, "[[") || strings.Contains(s, `\[\[`)
	if !open {
		return false
	}
	return strings.Contains(s, "]]") || strings.Contains(s, `\]\]`)
}

// Spoiler returns the placeholder when s carries spoiler markers and s
// unchanged otherwise. Whole-body replacement, not selective masking.
func Spoiler(s string) string {
	if HasSpoiler(s) {
		return SpoilerPlaceholder
	}
	return s
}
