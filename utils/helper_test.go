package utils

import (
	"context"
	"testing"
	"time"
)

func TestConvertToLocalTime_UnknownZoneFallsBackToUTC(t *testing.T) {
	in := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	out := ConvertToLocalTime(in, "Not/AZone")
	if out.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %s", out.Location())
	}
	if !out.Equal(in) {
		t.Fatalf("expected same instant, got %s", out)
	}
}

func TestDereferencePtr(t *testing.T) {
	var nilStr *string
	if got := DereferencePtr(nilStr, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	v := "value"
	if got := DereferencePtr(&v); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestUniqueSlice_PreservesOrder(t *testing.T) {
	got := UniqueSlice([]string{"b", "a", "b", "c", "a"})
	expected := []string{"b", "a", "c"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
}

func TestSessionIdContext(t *testing.T) {
	ctx := SetSessionIdInContext(context.Background(), "session-1")
	id, ok := GetSessionIdFromContext(ctx)
	if !ok || id != "session-1" {
		t.Fatalf("expected session-1, got %q (ok=%v)", id, ok)
	}
	if _, ok := GetCorrelationIdFromContext(ctx); ok {
		t.Fatalf("expected no correlation id")
	}
}
