package testutil

import (
	"errors"
	"testing"

	"github.com/leengari/shardmerge/internal/merger/result"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}

// AssertCursorError checks that err is a *result.CursorError of the given kind
func AssertCursorError(t *testing.T, err error, kind, context string) {
	t.Helper()
	var ce *result.CursorError
	if !errors.As(err, &ce) {
		t.Errorf("%s: expected *result.CursorError, got %T (%v)", context, err, err)
		return
	}
	if ce.Kind != kind {
		t.Errorf("%s: expected cursor error kind %s, got %s", context, kind, ce.Kind)
	}
}

// CollectNames drains a merged result and returns column 1 of every row
func CollectNames(t *testing.T, merged result.MergedResult) []string {
	t.Helper()
	var names []string
	for merged.Next() {
		v, err := merged.Value(1)
		if err != nil {
			t.Fatalf("reading column 1: %v", err)
		}
		s, ok := v.(string)
		if !ok {
			t.Fatalf("column 1 is %T, expected string", v)
		}
		names = append(names, s)
	}
	return names
}

// AssertNames checks that a merged result yields exactly the given names in order
func AssertNames(t *testing.T, merged result.MergedResult, expected []string, context string) {
	t.Helper()
	got := CollectNames(t, merged)
	if len(got) != len(expected) {
		t.Errorf("%s: expected names %v, got %v", context, expected, got)
		return
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("%s: expected names %v, got %v", context, expected, got)
			return
		}
	}
}
