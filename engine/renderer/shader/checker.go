package shader

import (
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-march/common"
)

// Checker compiles changed shader files on a background worker so a broken save is reported
// before the main loop is asked to rebuild its pipeline.
type Checker struct {
	pool   worker.DynamicWorkerPool
	seq    atomic.Int64
	closed atomic.Bool
}

// NewChecker creates a Checker backed by a single-worker pool, so checks complete in submission order.
//
// Returns:
//   - *Checker: the running checker, to be closed by the caller
func NewChecker() *Checker {
	return &Checker{
		pool: worker.NewDynamicWorkerPool(1, 8, time.Second),
	}
}

// Check queues a load and compile of the file at path. onValid runs on the worker when it passes;
// failures are logged and dropped. Checks submitted after Close are ignored.
//
// Parameters:
//   - path: the shader file
//   - onValid: called when the file loads, reflects and compiles
func (c *Checker) Check(path string, onValid func()) {
	if c.closed.Load() {
		return
	}
	c.pool.SubmitTask(worker.Task{
		ID:      int(c.seq.Add(1)),
		Payload: path,
		Do: func() (any, error) {
			if err := CheckFile(path); err != nil {
				common.Logger().Error("shader: rejected change", "path", path, "error", err)
				return nil, err
			}
			if onValid != nil {
				onValid()
			}
			return nil, nil
		},
	})
}

// Close stops the worker. Queued checks are dropped.
func (c *Checker) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.pool.Stop()
}

// CheckFile loads the shader at path and compiles it with naga without keeping the result.
//
// Parameters:
//   - path: the shader file
//
// Returns:
//   - error: error if the file cannot be read, lacks the expected entry points or bindings, or fails to compile
func CheckFile(path string) error {
	s, err := NewShader(WithKey(filepath.Base(path)), WithPath(path))
	if err != nil {
		return err
	}
	return s.Validate()
}
