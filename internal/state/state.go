// Package state implements the non-relational abstract state: either
// Bottom (unreachable) or a finite map from variable name to domain
// element, where an absent variable is implicitly Top.
package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/whileabs/whileabs/internal/domain"
)

// State is Bottom when vars == nil and bottom == true; otherwise it holds a
// (possibly empty) map of non-bottom domain elements. Top is the empty,
// non-bottom map.
type State struct {
	bottom bool
	vars   map[string]domain.Element
}

// Bottom returns the unreachable state.
func Bottom() *State { return &State{bottom: true} }

// Top returns the state where every variable is implicitly Top.
func Top() *State { return &State{vars: map[string]domain.Element{}} }

func (s *State) IsBottom() bool { return s.bottom }

// Clone returns an independent copy; domain elements are value types so a
// shallow copy of the map is enough.
func (s *State) Clone() *State {
	if s.bottom {
		return Bottom()
	}
	cp := make(map[string]domain.Element, len(s.vars))
	for k, v := range s.vars {
		cp[k] = v
	}
	return &State{vars: cp}
}

// Get returns the value of x: Bottom if the state itself is Bottom, Top if
// x is unbound, else its recorded element.
func (s *State) Get(d domain.Domain, x string) domain.Element {
	if s.bottom {
		return d.Bottom()
	}
	if v, ok := s.vars[x]; ok {
		return v
	}
	return d.Top()
}

// Set binds x to v, mutating s in place. Binding Bottom collapses the
// entire state to Bottom.
func (s *State) Set(x string, v domain.Element) {
	if s.bottom {
		return
	}
	if v.IsBottom() {
		s.bottom = true
		s.vars = nil
		return
	}
	s.vars[x] = v
}

// Lub is the state join: either side Bottom yields the other; common keys
// join elementwise; a key present in only one side is dropped (absent means
// Top there, and Top lubbed with anything is Top, i.e. absent).
func Lub(d domain.Domain, s1, s2 *State) *State {
	if s1.bottom {
		return s2.Clone()
	}
	if s2.bottom {
		return s1.Clone()
	}
	out := Top()
	for k, v1 := range s1.vars {
		if v2, ok := s2.vars[k]; ok {
			joined := d.Lub(v1, v2)
			if !joined.IsTop() {
				out.vars[k] = joined
			}
		}
	}
	return out
}

// Glb is the state meet: either side Bottom yields Bottom; keys are unioned
// (absent on one side means Top there, i.e. the identity for glb); any
// resulting Bottom value collapses the whole state.
func Glb(d domain.Domain, s1, s2 *State) *State {
	if s1.bottom || s2.bottom {
		return Bottom()
	}
	out := Top()
	keys := map[string]struct{}{}
	for k := range s1.vars {
		keys[k] = struct{}{}
	}
	for k := range s2.vars {
		keys[k] = struct{}{}
	}
	for k := range keys {
		v1 := getOrTop(d, s1, k)
		v2 := getOrTop(d, s2, k)
		met := d.Glb(v1, v2)
		if met.IsBottom() {
			return Bottom()
		}
		if !met.IsTop() {
			out.vars[k] = met
		}
	}
	return out
}

func getOrTop(d domain.Domain, s *State, k string) domain.Element {
	if v, ok := s.vars[k]; ok {
		return v
	}
	return d.Top()
}

// Widening and Narrowing act elementwise over the union of keys; a key
// introduced only by s2 is inherited unchanged (the natural "no prior
// iterate" base case).
func Widening(d domain.Domain, s1, s2 *State) *State {
	return elementwise(d, s1, s2, d.Widening)
}

func Narrowing(d domain.Domain, s1, s2 *State) *State {
	return elementwise(d, s1, s2, d.Narrowing)
}

func elementwise(d domain.Domain, s1, s2 *State, op func(x, y domain.Element) domain.Element) *State {
	if s1.bottom {
		return s2.Clone()
	}
	if s2.bottom {
		return s1.Clone()
	}
	out := Top()
	keys := map[string]struct{}{}
	for k := range s1.vars {
		keys[k] = struct{}{}
	}
	for k := range s2.vars {
		keys[k] = struct{}{}
	}
	for k := range keys {
		v1, ok1 := s1.vars[k]
		v2, ok2 := s2.vars[k]
		switch {
		case ok1 && ok2:
			r := op(v1, v2)
			if !r.IsTop() {
				out.vars[k] = r
			}
		case ok2:
			out.vars[k] = v2
		}
	}
	return out
}

// LessEq is the partial order used by the fixpoint's stability check: s1 ⊑
// s2 iff every common key (absent ones treated as Top) compares ⊑, and s1
// being Bottom always holds.
func LessEq(d domain.Domain, s1, s2 *State) bool {
	if s1.bottom {
		return true
	}
	if s2.bottom {
		return false
	}
	keys := map[string]struct{}{}
	for k := range s1.vars {
		keys[k] = struct{}{}
	}
	for k := range s2.vars {
		keys[k] = struct{}{}
	}
	for k := range keys {
		v1 := getOrTop(d, s1, k)
		v2 := getOrTop(d, s2, k)
		if !domain.LessEq(d, v1, v2) {
			return false
		}
	}
	return true
}

// Equal reports whether s1 and s2 agree on every key (absent treated as
// Top), the fixpoint's M' = M stability test.
func Equal(d domain.Domain, s1, s2 *State) bool {
	return LessEq(d, s1, s2) && LessEq(d, s2, s1)
}

func (s *State) String() string {
	if s.bottom {
		return "⊥"
	}
	if len(s.vars) == 0 {
		return "⊤"
	}
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, s.vars[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FromString parses the CLI/test state syntax "var:val;var:val;…" using the
// domain's own literal parser for each value.
func FromString(d domain.Domain, s string) (*State, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Top(), nil
	}
	out := Top()
	for _, binding := range strings.Split(s, ";") {
		binding = strings.TrimSpace(binding)
		if binding == "" {
			continue
		}
		parts := strings.SplitN(binding, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed state binding %q, expected var:val", binding)
		}
		name := strings.TrimSpace(parts[0])
		val, err := d.FromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		out.Set(name, val)
		if out.IsBottom() {
			return out, nil
		}
	}
	return out, nil
}
