package testutils

import "fmt"

// ScriptedRoller returns a fixed sequence of rolls regardless of die size,
// satisfying the dice.Roller interface. Running past the script is a test
// bug and fails loudly.
type ScriptedRoller struct {
	Rolls []int
	next  int
}

// NewScriptedRoller creates a roller that returns the given rolls in order.
func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{Rolls: rolls}
}

// Roll returns the next scripted value.
func (r *ScriptedRoller) Roll(_ int) (int, error) {
	if r.next >= len(r.Rolls) {
		return 0, fmt.Errorf("scripted roller exhausted after %d rolls", len(r.Rolls))
	}
	v := r.Rolls[r.next]
	r.next++
	return v, nil
}

// RollN returns the next count scripted values.
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ConstantRoller always returns the same value, satisfying the dice.Roller
// interface. Useful when a test only cares about one forced roll.
type ConstantRoller struct {
	Value int
}

// Roll returns the constant value.
func (r *ConstantRoller) Roll(_ int) (int, error) { return r.Value, nil }

// RollN returns count copies of the constant value.
func (r *ConstantRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = r.Value
	}
	return out, nil
}
