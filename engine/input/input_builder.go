package input

// InputBuilderOption is a functional option for configuring an Input in NewInput.
type InputBuilderOption func(*inputImpl)

// WithSpeed sets the per-frame movement distance.
// Values <= 0 are ignored and the default speed is kept.
//
// Parameters:
//   - speed: world units moved per frame while a control is held
//
// Returns:
//   - InputBuilderOption: a function that sets the speed
func WithSpeed(speed float32) InputBuilderOption {
	return func(in *inputImpl) {
		if speed <= 0 {
			return
		}
		in.speed = speed
	}
}

// WithBindings replaces the key binding table. A nil or empty table is ignored.
//
// Parameters:
//   - bindings: key code to action table
//
// Returns:
//   - InputBuilderOption: a function that sets the bindings
func WithBindings(bindings Bindings) InputBuilderOption {
	return func(in *inputImpl) {
		if len(bindings) == 0 {
			return
		}
		in.bindings = bindings.Clone()
	}
}

// WithBinding adds or overrides a single key binding on top of the current table.
//
// Parameters:
//   - keyCode: the GLFW key code
//   - action: the action the key drives
//
// Returns:
//   - InputBuilderOption: a function that sets the binding
func WithBinding(keyCode uint32, action Action) InputBuilderOption {
	return func(in *inputImpl) {
		if !action.Valid() {
			return
		}
		in.bindings[keyCode] = action
	}
}
