package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"classified", New(KindLocked, "frozen"), KindLocked},
		{"wrapped classified", fmt.Errorf("outer: %w", New(KindForbidden, "no")), KindForbidden},
		{"unclassified", errors.New("plain"), KindTransport},
		{"nil", nil, KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("while accepting: %w", New(KindAlreadyAccepted, "done"))
	if !Is(err, KindAlreadyAccepted) {
		t.Error("Is() should classify through %w wrapping")
	}
	if Is(nil, KindAlreadyAccepted) {
		t.Error("Is(nil) must be false")
	}
}
