package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	t.Setenv("DUR_TEST", "90s")
	if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
	t.Setenv("DUR_TEST", "not-a-duration")
	if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback on parse failure, got %v", got)
	}
	t.Setenv("DUR_TEST", "-5s")
	if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback on non-positive value, got %v", got)
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "42")
	if got := intEnvOrDefault("INT_TEST", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	t.Setenv("INT_TEST", "zero")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected fallback, got %d", got)
	}
}

func TestFloatEnvOrDefault(t *testing.T) {
	t.Setenv("FLOAT_TEST", "2.5")
	if got := floatEnvOrDefault("FLOAT_TEST", 1.0); got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}
	t.Setenv("FLOAT_TEST", "-1")
	if got := floatEnvOrDefault("FLOAT_TEST", 1.0); got != 1.0 {
		t.Fatalf("expected fallback on non-positive value, got %v", got)
	}
}
