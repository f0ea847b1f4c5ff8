package main

import "testing"

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 12, -3")
	if err != nil || p.X != 12 || p.Y != -3 {
		t.Fatalf("parsePoint = %+v, %v", p, err)
	}
	for _, bad := range []string{"", "12", "a,1", "1,b"} {
		if _, err := parsePoint(bad); err == nil {
			t.Fatalf("parsePoint(%q) accepted", bad)
		}
	}
}
