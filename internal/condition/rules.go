// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package condition

// Rules holds the two condition tables of a schema.
//
// Key maps a property name to the conditions gating the property itself.
// Value maps a choice-typed property name and one of its candidate values to
// the conditions gating that candidate.
type Rules struct {
	Key   map[string][]Condition
	Value map[string]map[string][]Condition
}

// KeyValid reports whether the property is currently visible and settable.
// A property without key conditions is always valid.
func (r Rules) KeyValid(name string, l Lookup) (bool, error) {
	conds, ok := r.Key[name]
	if !ok {
		return true, nil
	}
	return Evaluate(conds, l)
}

// ValueValid reports whether candidate is currently offerable for the
// property. Candidates without value conditions are always valid.
func (r Rules) ValueValid(name, candidate string, l Lookup) (bool, error) {
	byValue, ok := r.Value[name]
	if !ok {
		return true, nil
	}
	conds, ok := byValue[candidate]
	if !ok {
		return true, nil
	}
	return Evaluate(conds, l)
}

// Dependents returns the properties whose key conditions reference operand,
// in no particular order.
func (r Rules) Dependents(operand string) []string {
	var out []string
	for name, conds := range r.Key {
		for _, c := range conds {
			if c.Operand == operand {
				out = append(out, name)
				break
			}
		}
	}
	return out
}
