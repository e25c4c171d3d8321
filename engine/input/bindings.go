package input

import (
	"fmt"
	"maps"
	"strings"

	"github.com/Carmen-Shannon/oxy-march/common"
)

// Action identifies one camera control.
type Action int

const (
	// ActionMoveForward advances eye and target along the view direction.
	ActionMoveForward Action = iota
	// ActionMoveBackward retreats eye and target along the view direction.
	ActionMoveBackward
	// ActionStrafeLeft swings the target to the left.
	ActionStrafeLeft
	// ActionStrafeRight swings the target to the right.
	ActionStrafeRight
	// ActionLiftUp moves the target against the up vector.
	ActionLiftUp
	// ActionLiftDown moves the target along the up vector.
	ActionLiftDown

	actionCount
)

var actionNames = [actionCount]string{
	ActionMoveForward:  "forward",
	ActionMoveBackward: "backward",
	ActionStrafeLeft:   "strafe_left",
	ActionStrafeRight:  "strafe_right",
	ActionLiftUp:       "lift_up",
	ActionLiftDown:     "lift_down",
}

// Valid reports whether a is one of the defined actions.
func (a Action) Valid() bool {
	return a >= 0 && a < actionCount
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Actions returns every defined action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := range actionCount {
		out = append(out, a)
	}
	return out
}

// ParseAction resolves an action name such as "strafe_left".
//
// Parameters:
//   - name: the action name, case-insensitive
//
// Returns:
//   - Action: the parsed action
//   - error: error if the name is unknown
func ParseAction(name string) (Action, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for a, s := range actionNames {
		if s == n {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Bindings maps GLFW key codes to actions. Several keys may drive the same action.
type Bindings map[uint32]Action

// DefaultBindings returns the built-in key table:
// Space forward, Left Shift backward, W/Up lift up, S/Down lift down, A/Left strafe left, D/Right strafe right.
func DefaultBindings() Bindings {
	return Bindings{
		common.KeySpace:     ActionMoveForward,
		common.KeyLeftShift: ActionMoveBackward,
		common.KeyW:         ActionLiftUp,
		common.KeyUp:        ActionLiftUp,
		common.KeyS:         ActionLiftDown,
		common.KeyDown:      ActionLiftDown,
		common.KeyA:         ActionStrafeLeft,
		common.KeyLeft:      ActionStrafeLeft,
		common.KeyD:         ActionStrafeRight,
		common.KeyRight:     ActionStrafeRight,
	}
}

// Clone returns an independent copy of the table.
func (b Bindings) Clone() Bindings {
	return maps.Clone(b)
}

// Keys returns the key codes bound to the given action.
//
// Parameters:
//   - a: the action to look up
//
// Returns:
//   - []uint32: the bound key codes, in no particular order
func (b Bindings) Keys(a Action) []uint32 {
	var keys []uint32
	for k, v := range b {
		if v == a {
			keys = append(keys, k)
		}
	}
	return keys
}

// ParseBindings builds a table from action names to key names, e.g.
// {"forward": ["space"], "strafe_left": ["a", "left"]}.
//
// Parameters:
//   - named: action name to key names
//
// Returns:
//   - Bindings: the resulting table
//   - error: error if an action or key name is unknown, or a key is bound twice
func ParseBindings(named map[string][]string) (Bindings, error) {
	out := make(Bindings)
	for actionName, keyNames := range named {
		action, err := ParseAction(actionName)
		if err != nil {
			return nil, err
		}
		for _, keyName := range keyNames {
			code, ok := common.KeyCode(keyName)
			if !ok {
				return nil, fmt.Errorf("unknown key %q for action %s", keyName, action)
			}
			if prev, dup := out[code]; dup && prev != action {
				return nil, fmt.Errorf("key %q bound to both %s and %s", keyName, prev, action)
			}
			out[code] = action
		}
	}
	return out, nil
}
