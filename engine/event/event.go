package event

import (
	"fmt"
	"sync"
)

// Kind tags an Event with the handler that consumes it.
type Kind int

const (
	// KindKey is a key press or release. Uses Key and Pressed.
	KindKey Kind = iota
	// KindResize is a framebuffer size change. Uses Width and Height.
	KindResize
	// KindFocus is a window focus change. Uses Focused.
	KindFocus
	// KindRedraw asks for one frame: update the camera, upload the uniform block and draw.
	KindRedraw
	// KindShaderReload asks the renderer to rebuild its pipeline from the shader source.
	KindShaderReload
	// KindClose asks the main loop to stop.
	KindClose
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindResize:
		return "resize"
	case KindFocus:
		return "focus"
	case KindRedraw:
		return "redraw"
	case KindShaderReload:
		return "shader_reload"
	case KindClose:
		return "close"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is a tagged union of everything the window and watchers deliver to the main loop.
// Only the fields documented for its Kind are meaningful.
type Event struct {
	Kind Kind

	Key     uint32
	Pressed bool

	Width  int
	Height int

	Focused bool
}

// Key returns a key press (pressed = true) or release event.
func Key(keyCode uint32, pressed bool) Event {
	return Event{Kind: KindKey, Key: keyCode, Pressed: pressed}
}

// Resize returns a framebuffer resize event.
func Resize(width, height int) Event {
	return Event{Kind: KindResize, Width: width, Height: height}
}

// Focus returns a focus change event.
func Focus(focused bool) Event {
	return Event{Kind: KindFocus, Focused: focused}
}

// Redraw returns a redraw request.
func Redraw() Event {
	return Event{Kind: KindRedraw}
}

// ShaderReload returns a shader reload request.
func ShaderReload() Event {
	return Event{Kind: KindShaderReload}
}

// Close returns a close request.
func Close() Event {
	return Event{Kind: KindClose}
}

func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		return fmt.Sprintf("key(%d, pressed=%t)", e.Key, e.Pressed)
	case KindResize:
		return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height)
	case KindFocus:
		return fmt.Sprintf("focus(%t)", e.Focused)
	default:
		return e.Kind.String()
	}
}

// Queue is a FIFO of pending events. Window callbacks and the render loop run on the same thread;
// the mutex exists for producers on other goroutines such as the shader file watcher.
type Queue struct {
	mu      sync.Mutex
	pending []Event
}

// NewQueue creates an empty Queue.
//
// Returns:
//   - *Queue: the new queue
func NewQueue() *Queue {
	return &Queue{pending: make([]Event, 0, 16)}
}

// Push appends events to the back of the queue.
//
// Parameters:
//   - events: the events to enqueue, in order
func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, events...)
}

// Drain removes and returns every pending event in arrival order.
//
// Returns:
//   - []Event: the pending events, or nil if the queue is empty
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = make([]Event, 0, cap(out))
	return out
}

// Len returns the number of pending events.
//
// Returns:
//   - int: pending event count
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
