// Package util provides common utility functions and constants used across the
// hkctl application. This package is intentionally kept dependency-free
// (no imports from other internal/* packages) to serve as a shared foundation
// without introducing circular dependencies.
package util

import "strings"

// DefaultString returns the fallback value if v is empty or consists entirely
// of whitespace; otherwise it returns v unchanged.
//
// Examples:
//
//	DefaultString("hello", "world")  → "hello"   // non-empty → kept
//	DefaultString("",      "world")  → "world"   // empty → fallback
//	DefaultString("  ",    "world")  → "world"   // whitespace-only → fallback
func DefaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// EmptyDash returns "-" if s is empty or consists entirely of whitespace;
// otherwise it returns s unchanged.
//
// Listing output uses it for optional record fields (room of an unassigned
// accessory, manufacturer, last fire time) so a blank column is never
// ambiguous.
func EmptyDash(s string) string {
	return DefaultString(s, "-")
}

// JoinOrDash joins values with ", " or returns "-" when there are none.
func JoinOrDash(values []string) string {
	return EmptyDash(strings.Join(values, ", "))
}

// YesNo renders a boolean column.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
