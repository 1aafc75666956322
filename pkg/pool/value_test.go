package pool

import (
	"errors"
	"testing"
)

func TestAsSucceedsOnMatchingType(t *testing.T) {
	v, err := As[int](42)
	if err != nil {
		t.Fatalf("As[int](42) err = %v", err)
	}
	if v != 42 {
		t.Fatalf("As[int](42) = %v, want 42", v)
	}
}

func TestAsFailsOnTypeMismatch(t *testing.T) {
	_, err := As[int]("not an int")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("As[int](string) err = %v, want ErrTypeMismatch", err)
	}
}

func TestAsOnNilReturnsZeroValueAndMismatch(t *testing.T) {
	v, err := As[string](nil)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("As[string](nil) err = %v, want ErrTypeMismatch", err)
	}
	if v != "" {
		t.Fatalf("As[string](nil) = %q, want empty string", v)
	}
}
