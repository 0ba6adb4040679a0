package observability

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func TestAttributeConstructors(t *testing.T) {
	cases := []struct {
		name      string
		attr      Attribute
		wantKey   string
		wantValue any
	}{
		{"string", String("outcome", "recovered"), "outcome", "recovered"},
		{"empty string", String("stage", ""), "stage", ""},
		{"int", Int("input_bytes", 2048), "input_bytes", 2048},
		{"int zero", Int("defects", 0), "defects", 0},
		{"int64", Int64("total_runs", 1<<40), "total_runs", int64(1 << 40)},
		{"float64", Float64("repair_ratio", 0.25), "repair_ratio", 0.25},
		{"bool true", Bool("repair_applied", true), "repair_applied", true},
		{"bool false", Bool("repair_applied", false), "repair_applied", false},
		{"duration", Duration("elapsed", 1500 * time.Millisecond), "elapsed", 1500 * time.Millisecond},
		{"zero duration", Duration("elapsed", 0), "elapsed", time.Duration(0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.attr.Key != tc.wantKey {
				t.Errorf("key = %q, want %q", tc.attr.Key, tc.wantKey)
			}
			if tc.attr.Value != tc.wantValue {
				t.Errorf("value = %v (%T), want %v (%T)",
					tc.attr.Value, tc.attr.Value, tc.wantValue, tc.wantValue)
			}
		})
	}
}

func TestStringSliceAttribute(t *testing.T) {
	paths := []string{"tables[0].name", "crud_matrix[2].ops"}
	attr := StringSlice("defect_paths", paths)

	if attr.Key != "defect_paths" {
		t.Errorf("key = %q, want defect_paths", attr.Key)
	}
	got, ok := attr.Value.([]string)
	if !ok {
		t.Fatalf("value = %T, want []string", attr.Value)
	}
	if !reflect.DeepEqual(got, paths) {
		t.Errorf("value = %v, want %v", got, paths)
	}
}

// Error flattens the error to its message so handlers never have to deal
// with a live error value, and a nil error still yields the key.
func TestErrorAttribute(t *testing.T) {
	t.Run("message including wrap chain", func(t *testing.T) {
		err := fmt.Errorf("parse candidate: %w", errors.New("unexpected end of input"))
		attr := Error(err)
		if attr.Key != "error" {
			t.Errorf("key = %q, want error", attr.Key)
		}
		if attr.Value != "parse candidate: unexpected end of input" {
			t.Errorf("value = %q", attr.Value)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		attr := Error(nil)
		if attr.Key != "error" {
			t.Errorf("key = %q, want error", attr.Key)
		}
		if attr.Value != "" {
			t.Errorf("value = %q, want empty string", attr.Value)
		}
	})
}

// The zero value is StatusUnset so a span that never saw SetStatus reports
// as undetermined rather than OK.
func TestStatusCodeValues(t *testing.T) {
	if StatusUnset != 0 {
		t.Errorf("StatusUnset = %d, want 0", StatusUnset)
	}
	if StatusOK != 1 {
		t.Errorf("StatusOK = %d, want 1", StatusOK)
	}
	if StatusError != 2 {
		t.Errorf("StatusError = %d, want 2", StatusError)
	}
}

func BenchmarkAttributeConstruction(b *testing.B) {
	err := errors.New("candidate is not decodable JSON")
	for i := 0; i < b.N; i++ {
		_ = String("outcome", "recovered")
		_ = Int("input_bytes", 4096)
		_ = Bool("repair_applied", true)
		_ = Duration("elapsed", 3*time.Millisecond)
		_ = Error(err)
	}
}
