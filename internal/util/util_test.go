package util

import "testing"

func TestAuthority(t *testing.T) {
	cases := []struct {
		host string
		port uint16
		want string
	}{
		{"127.0.0.1", 55123, "127.0.0.1:55123"},
		{"", 55123, "127.0.0.1:55123"},
		{"::1", 8080, "[::1]:8080"},
	}
	for _, tc := range cases {
		if got := Authority(tc.host, tc.port); got != tc.want {
			t.Fatalf("Authority(%q, %d) = %q, want %q", tc.host, tc.port, got, tc.want)
		}
	}
}

func TestParsePort(t *testing.T) {
	if p, err := ParsePort("55124"); err != nil || p != 55124 {
		t.Fatalf("expected 55124, got %d (%v)", p, err)
	}
	for _, bad := range []string{"", "abc", "0", "70000", "-1"} {
		if _, err := ParsePort(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestEmptyDash(t *testing.T) {
	if EmptyDash("  ") != "-" {
		t.Fatal("expected dash for blank input")
	}
	if JoinOrDash(nil) != "-" {
		t.Fatal("expected dash for empty list")
	}
	if JoinOrDash([]string{"a", "b"}) != "a, b" {
		t.Fatal("unexpected join")
	}
}
