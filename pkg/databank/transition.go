package databank

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/craftviz/craftviz/pkg/errors"
)

// Sentinel actor/target values that mark a transition's kind instead of
// referencing a real object.
const (
	actorNatural  = -1 // spontaneous transition, no actor involved
	actorInteract = -2 // player interacts without holding anything
	targetDropped = -1 // actor is dropped on the ground
)

// Kind classifies a transition by how it is triggered.
type Kind int

const (
	// KindCraft is the default: a held object applied to a ground object.
	KindCraft Kind = iota
	// KindNatural happens spontaneously after the decay timer elapses.
	KindNatural
	// KindBareHands is triggered with empty hands on a ground object.
	KindBareHands
	// KindInteract is a non-consuming player interaction with a ground object.
	KindInteract
	// KindDrop is a held object placed on the ground.
	KindDrop
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindNatural:
		return "natural"
	case KindBareHands:
		return "bare-hands"
	case KindInteract:
		return "interact"
	case KindDrop:
		return "drop"
	default:
		return "craft"
	}
}

// Transition is a recipe converting up to two input objects into up to two
// output objects.
type Transition struct {
	Actor     int // object held in hand before, or a sentinel
	Target    int // object on the ground before, or a sentinel
	NewActor  int // object held in hand after
	NewTarget int // object on the ground after

	Kind Kind

	// AutoDecaySeconds is nonzero exactly for KindNatural transitions.
	// Positive values are seconds; negative values count in-game epochs.
	AutoDecaySeconds int

	// LastUseActor / LastUseTarget mark transitions that consume the final
	// use of a multi-use object.
	LastUseActor  bool
	LastUseTarget bool

	// ReverseUseActor / ReverseUseTarget give one use back instead.
	ReverseUseActor  bool
	ReverseUseTarget bool

	ActorMinUseFraction  float64
	TargetMinUseFraction float64

	Move            int
	DesiredMoveDist int
}

// NewTransition classifies and validates a transition record.
// It returns a data-integrity error if the record violates the kind
// invariants (e.g., a natural transition without a decay timer).
func NewTransition(actor, target, newActor, newTarget, autoDecaySeconds int) (*Transition, error) {
	t := &Transition{
		Actor:            actor,
		Target:           target,
		NewActor:         newActor,
		NewTarget:        newTarget,
		AutoDecaySeconds: autoDecaySeconds,
		Kind:             KindCraft,
	}

	switch {
	case actor == actorNatural:
		t.Kind = KindNatural
	case actor == BareHandsID:
		t.Kind = KindBareHands
	case actor == actorInteract:
		t.Kind = KindInteract
	case target == targetDropped:
		t.Kind = KindDrop
	}

	switch t.Kind {
	case KindNatural, KindBareHands, KindInteract:
		if target <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidTransition,
				"%s transition needs a positive target, got %d", t.Kind, target)
		}
	case KindDrop:
		if actor <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidTransition,
				"drop transition needs a positive actor, got %d", actor)
		}
	}

	// A transition is natural if and only if it carries a decay timer.
	if (t.Kind == KindNatural) != (autoDecaySeconds != 0) {
		return nil, errors.New(errors.ErrCodeInvalidTransition,
			"decay timer %d inconsistent with %s transition %d_%d", autoDecaySeconds, t.Kind, actor, target)
	}

	return t, nil
}

// Inputs returns the distinct positive-id input objects of the transition.
func (t *Transition) Inputs() []int {
	var in []int
	if t.Actor > 0 {
		in = append(in, t.Actor)
	}
	if t.Target > 0 && t.Target != t.Actor {
		in = append(in, t.Target)
	}
	return in
}

// Outputs returns the distinct positive-id output objects of the transition.
func (t *Transition) Outputs() []int {
	var out []int
	if t.NewActor > 0 {
		out = append(out, t.NewActor)
	}
	if t.NewTarget > 0 && t.NewTarget != t.NewActor {
		out = append(out, t.NewTarget)
	}
	return out
}

// parseTransitionFile reads a single transitions/<name>.txt file. The actor
// and target ids plus the last-use flags are encoded in the file name; the
// remaining fields sit space-separated on the first line.
func parseTransitionFile(dir, filename string) (*Transition, error) {
	parts := strings.Split(strings.TrimSuffix(filename, ".txt"), "_")
	if len(parts) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidTransition, "%s: malformed transition file name", filename)
	}
	actor, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTransition, err, "%s: bad actor id", filename)
	}
	target, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTransition, err, "%s: bad target id", filename)
	}
	lastUseActor := false
	lastUseTarget := false
	for _, flag := range parts[2:] {
		switch flag {
		case "LA":
			lastUseActor = true
		case "LT", "L":
			lastUseTarget = true
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return nil, err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidTransition, "%s: first line needs newActor and newTarget", filename)
	}

	intField := func(i int) int {
		if i >= len(fields) {
			return 0
		}
		v, _ := strconv.Atoi(fields[i])
		return v
	}
	floatField := func(i int) float64 {
		if i >= len(fields) {
			return 0
		}
		v, _ := strconv.ParseFloat(fields[i], 64)
		return v
	}

	newActor, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTransition, err, "%s: bad newActor", filename)
	}
	newTarget, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTransition, err, "%s: bad newTarget", filename)
	}

	t, err := NewTransition(actor, target, newActor, newTarget, intField(2))
	if err != nil {
		return nil, err
	}
	t.LastUseActor = lastUseActor
	t.LastUseTarget = lastUseTarget
	t.ActorMinUseFraction = floatField(3)
	t.TargetMinUseFraction = floatField(4)
	t.ReverseUseActor = intField(5) == 1
	t.ReverseUseTarget = intField(6) == 1
	t.Move = intField(7)
	t.DesiredMoveDist = intField(8)
	return t, nil
}
