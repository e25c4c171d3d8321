package shader

// WatcherOption is a functional option used to configure a Watcher during construction.
type WatcherOption func(*Watcher)

// WithPrecheck compiles the changed file on a background worker and only notifies when it compiles.
// Leave it off when shader validation is disabled, since naga rejects some valid WGSL.
//
// Parameters:
//   - enabled: whether to check changes before notifying
//
// Returns:
//   - WatcherOption: option function to apply
func WithPrecheck(enabled bool) WatcherOption {
	return func(w *Watcher) {
		if enabled && w.checker == nil {
			w.checker = NewChecker()
		}
	}
}
