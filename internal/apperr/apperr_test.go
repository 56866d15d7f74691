package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Message(t *testing.T) {
	err := New(KindValidation, "找不到商品：斗篷")
	if err.Error() != "找不到商品：斗篷" {
		t.Errorf("Error() = %q; want the raw message", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", New(KindValidation, "x"), KindValidation},
		{"not authenticated", New(KindNotAuthenticated, "x"), KindNotAuthenticated},
		{"wrapped", fmt.Errorf("outer: %w", New(KindNotFound, "x")), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
		{"nil-kind default", New(KindInternal, "x"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %q; want %q", got, tt.want)
			}
		})
	}
}
