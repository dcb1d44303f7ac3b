package hdsprite

import (
	"errors"
	"slices"
	"testing"
)

func collect(r *Registry, name string) []*Rule {
	var out []*Rule
	for rule := range r.FindByTarget(name) {
		out = append(out, rule)
	}
	return out
}

func TestRegistryDuplicateTargetsInOrder(t *testing.T) {
	reg := NewRegistry()
	a := mustRule(t, RuleConfig{Target: "Characters/Abigail", Owner: "a"})
	b := mustRule(t, RuleConfig{Target: "Characters/Haley", Owner: "b"})
	c := mustRule(t, RuleConfig{Target: "Characters/Abigail", Owner: "c"})
	for _, r := range []*Rule{a, b, c} {
		if err := reg.Register(r); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	got := collect(reg, "Characters/Abigail")
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("FindByTarget = %v, want [a c]", got)
	}
	if reg.Len() != 3 {
		t.Errorf("Len = %d, want 3", reg.Len())
	}
}

func TestRegistryEquivalentNames(t *testing.T) {
	reg := NewRegistry()
	r := mustRule(t, RuleConfig{Target: "Characters/Abigail"})
	_ = reg.Register(r)

	for _, name := range []string{
		"Characters/Abigail",
		"characters/abigail",
		`Characters\Abigail`,
		"/Characters//Abigail/",
		"Characters/Abigail.fr-FR",
	} {
		if got := collect(reg, name); len(got) != 1 {
			t.Errorf("FindByTarget(%q) = %d rules, want 1", name, len(got))
		}
	}
	if got := collect(reg, "Characters/Abigail2"); len(got) != 0 {
		t.Errorf("FindByTarget(Abigail2) = %d rules, want 0", len(got))
	}
}

func TestRegistryFindIsRestartableAndStoppable(t *testing.T) {
	reg := NewRegistry()
	for i := 0; i < 3; i++ {
		_ = reg.Register(mustRule(t, RuleConfig{Target: "t"}))
	}
	seq := reg.FindByTarget("t")

	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break yielded %d, want 1", n)
	}
	n = 0
	for range seq {
		n++
	}
	if n != 3 {
		t.Errorf("second pass yielded %d, want 3", n)
	}

	// Rules registered after the sequence was created are seen on the next pass.
	_ = reg.Register(mustRule(t, RuleConfig{Target: "t"}))
	n = 0
	for range seq {
		n++
	}
	if n != 4 {
		t.Errorf("pass after Register yielded %d, want 4", n)
	}
}

func TestRegistryTargetsDistinct(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(mustRule(t, RuleConfig{Target: "A"}))
	_ = reg.Register(mustRule(t, RuleConfig{Target: "B"}))
	_ = reg.Register(mustRule(t, RuleConfig{Target: "a"}))

	if got := reg.Targets(); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("Targets = %v, want [A B]", got)
	}
}

func TestRegistryRejectsNil(t *testing.T) {
	if err := NewRegistry().Register(nil); !errors.Is(err, ErrEmptyTarget) {
		t.Errorf("err = %v, want ErrEmptyTarget", err)
	}
}

func TestNewRuleRequiresTarget(t *testing.T) {
	if _, err := NewRule(RuleConfig{}); !errors.Is(err, ErrEmptyTarget) {
		t.Errorf("err = %v, want ErrEmptyTarget", err)
	}
}
