package databank

import (
	"testing"

	"github.com/craftviz/craftviz/pkg/errors"
)

func TestNewTransition_Kinds(t *testing.T) {
	cases := []struct {
		name          string
		actor, target int
		decay         int
		want          Kind
	}{
		{"natural", -1, 5, 3600, KindNatural},
		{"natural epochs", -1, 5, -2, KindNatural},
		{"bare hands", 0, 5, 0, KindBareHands},
		{"interact", -2, 5, 0, KindInteract},
		{"drop", 3, -1, 0, KindDrop},
		{"craft", 3, 5, 0, KindCraft},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := NewTransition(tc.actor, tc.target, 0, 6, tc.decay)
			if err != nil {
				t.Fatalf("NewTransition() error: %v", err)
			}
			if tr.Kind != tc.want {
				t.Errorf("Kind = %v, want %v", tr.Kind, tc.want)
			}
		})
	}
}

func TestNewTransition_Invalid(t *testing.T) {
	cases := []struct {
		name          string
		actor, target int
		decay         int
	}{
		{"natural without decay", -1, 5, 0},
		{"natural without target", -1, -1, 60},
		{"craft with decay", 3, 5, 60},
		{"bare hands without target", 0, 0, 0},
		{"interact without target", -2, -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTransition(tc.actor, tc.target, 0, 6, tc.decay)
			if err == nil {
				t.Fatal("NewTransition() should reject the record")
			}
			if !errors.Is(err, errors.ErrCodeInvalidTransition) {
				t.Errorf("error code = %q, want INVALID_TRANSITION", errors.GetCode(err))
			}
		})
	}
}

func TestTransition_InputsOutputs(t *testing.T) {
	tr, err := NewTransition(3, 5, 3, 7, 0)
	if err != nil {
		t.Fatalf("NewTransition() error: %v", err)
	}

	if got := tr.Inputs(); len(got) != 2 || got[0] != 3 || got[1] != 5 {
		t.Errorf("Inputs() = %v, want [3 5]", got)
	}
	if got := tr.Outputs(); len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Errorf("Outputs() = %v, want [3 7]", got)
	}
}

func TestTransition_InputsSkipSentinels(t *testing.T) {
	tr, err := NewTransition(0, 5, 0, 6, 0)
	if err != nil {
		t.Fatalf("NewTransition() error: %v", err)
	}

	// Bare hands (0) is a marker, not an input object.
	if got := tr.Inputs(); len(got) != 1 || got[0] != 5 {
		t.Errorf("Inputs() = %v, want [5]", got)
	}
	if got := tr.Outputs(); len(got) != 1 || got[0] != 6 {
		t.Errorf("Outputs() = %v, want [6]", got)
	}
}

func TestTransition_DuplicateIDsAreDistinct(t *testing.T) {
	// Same object as actor and target counts once.
	tr, err := NewTransition(4, 4, 4, 9, 0)
	if err != nil {
		t.Fatalf("NewTransition() error: %v", err)
	}
	if got := tr.Inputs(); len(got) != 1 || got[0] != 4 {
		t.Errorf("Inputs() = %v, want [4]", got)
	}
}
