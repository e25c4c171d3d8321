package common

import "strings"

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW         = 87  // W key (ASCII)
	KeyA         = 65  // A key (ASCII)
	KeyS         = 83  // S key (ASCII)
	KeyD         = 68  // D key (ASCII)
	KeyQ         = 81  // Q key (ASCII)
	KeyE         = 69  // E key (ASCII)
	KeyF         = 70  // F key (ASCII)
	KeyR         = 82  // R key (ASCII)
	KeyX         = 88  // X key (ASCII)
	KeyZ         = 90  // Z key (ASCII)
	KeySpace     = 32  // Spacebar (ASCII)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyEsc       = 256 // Escape key (GLFW)
	KeyEnter     = 257 // Enter key (GLFW)
	KeyTab       = 258 // Tab key (GLFW)
)

// Arrow keys.
const (
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift    = 340 // Left Shift (GLFW)
	KeyLeftControl  = 341 // Left Control (GLFW)
	KeyRightShift   = 344 // Right Shift (GLFW)
	KeyRightControl = 345 // Right Control (GLFW)
)

// keyNames maps the lower-case names accepted in configuration files to key codes.
var keyNames = map[string]uint32{
	"w":             KeyW,
	"a":             KeyA,
	"s":             KeyS,
	"d":             KeyD,
	"q":             KeyQ,
	"e":             KeyE,
	"f":             KeyF,
	"r":             KeyR,
	"x":             KeyX,
	"z":             KeyZ,
	"space":         KeySpace,
	"backspace":     KeyBackspace,
	"escape":        KeyEsc,
	"enter":         KeyEnter,
	"tab":           KeyTab,
	"right":         KeyRight,
	"left":          KeyLeft,
	"down":          KeyDown,
	"up":            KeyUp,
	"left_shift":    KeyLeftShift,
	"left_control":  KeyLeftControl,
	"right_shift":   KeyRightShift,
	"right_control": KeyRightControl,
}

// KeyCode resolves a key name such as "space" or "Left_Shift" to its GLFW key code.
// Names are matched case-insensitively.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is not known
func KeyCode(name string) (uint32, bool) {
	code, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// KeyName returns the configuration name for a key code, or an empty string if the code has no name.
//
// Parameters:
//   - code: the GLFW key code
//
// Returns:
//   - string: the lower-case key name
func KeyName(code uint32) string {
	for name, c := range keyNames {
		if c == code {
			return name
		}
	}
	return ""
}
