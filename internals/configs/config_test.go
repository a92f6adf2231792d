package configs

import (
	"testing"
	"time"
)

func TestGetEnvSchedule(t *testing.T) {
	const key = "CRA_TEST_CRON"
	if got := GetEnvSchedule(key, "5 0 * * *"); got != "5 0 * * *" {
		t.Fatalf("unset: got %q", got)
	}
	t.Setenv(key, "")
	if got := GetEnvSchedule(key, "5 0 * * *"); got != "" {
		t.Fatalf("empty: got %q", got)
	}
	t.Setenv(key, "OFF")
	if got := GetEnvSchedule(key, "5 0 * * *"); got != "" {
		t.Fatalf("off: got %q", got)
	}
	t.Setenv(key, " 0 2 * * * ")
	if got := GetEnvSchedule(key, "5 0 * * *"); got != "0 2 * * *" {
		t.Fatalf("set: got %q", got)
	}
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("CRA_TEST_INT", "abc")
	if got := GetEnvInt("CRA_TEST_INT", 6); got != 6 {
		t.Fatalf("bad int: got %d", got)
	}
	t.Setenv("CRA_TEST_INT", "12")
	if got := GetEnvInt("CRA_TEST_INT", 6); got != 12 {
		t.Fatalf("int: got %d", got)
	}
	t.Setenv("CRA_TEST_DUR", "15m")
	if got := GetEnvDuration("CRA_TEST_DUR", time.Second); got != 15*time.Minute {
		t.Fatalf("duration: got %v", got)
	}
	t.Setenv("CRA_TEST_BOOL", "false")
	if GetEnvBool("CRA_TEST_BOOL", true) {
		t.Fatal("bool: got true")
	}
	if got := GetEnv("CRA_TEST_MISSING", "x"); got != "x" {
		t.Fatalf("default: got %q", got)
	}
}
