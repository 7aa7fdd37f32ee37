package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowEmpty(t *testing.T) {
	dur, label, err := ParseWindow("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 0 || label != "" {
		t.Fatalf("expected no window, got %v %q", dur, label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("expected canonical label, got %s", label)
	}
}

func TestParseWindowCanonicalizes(t *testing.T) {
	_, label, err := ParseWindow("36 hours")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "1d12h" {
		t.Fatalf("expected 1d12h, got %s", label)
	}
}

func TestParseWindowErrors(t *testing.T) {
	for _, in := range []string{"abc", "3fortnights", "0d", "1w-"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.Local)
	tests := []struct {
		then time.Time
		want string
	}{
		{time.Time{}, ""},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2024-03-05 12:00"},
	}
	for _, tt := range tests {
		if got := Ago(now, tt.then); got != tt.want {
			t.Errorf("Ago(%v) = %q, want %q", tt.then, got, tt.want)
		}
	}
}
