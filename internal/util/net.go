// Package util provides common utility functions and constants used across the
// hkctl application. This package is intentionally kept dependency-free
// (no imports from other internal/* packages) to serve as a shared foundation
// without introducing circular dependencies.
package util

import (
	"net"
	"strconv"
	"strings"
)

// NormalizeHost returns the provided host if it is non-empty (after trimming
// whitespace), or DefaultHost if the host is empty or whitespace-only.
//
// Examples:
//
//	NormalizeHost("")           → "127.0.0.1"  // empty → default
//	NormalizeHost("  ")         → "127.0.0.1"  // whitespace → default
//	NormalizeHost("10.0.0.7")   → "10.0.0.7"   // explicit → kept
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return DefaultHost
	}
	return host
}

// Authority joins host and port into the "host:port" form used as the
// authority of the service endpoint. IPv6 literals are bracketed.
//
//	Authority("127.0.0.1", 55123) → "127.0.0.1:55123"
//	Authority("::1", 55123)       → "[::1]:55123"
func Authority(host string, port uint16) string {
	return net.JoinHostPort(NormalizeHost(host), strconv.FormatUint(uint64(port), 10))
}
