package testconv

import (
	"fmt"
	"sync"

	"github.com/stretchr/testify/assert"
)

var _ assert.TestingT = (*Recorder)(nil)

// Recorder is an assert.TestingT that keeps failures instead of reporting
// them, so a test can check what a failing assertion would have printed.
type Recorder struct {
	mu       sync.Mutex
	failures []string
}

func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

// Failed reports whether any assertion failed.
func (r *Recorder) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures) > 0
}

// Failures returns the recorded failure output, one entry per failed
// assertion.
func (r *Recorder) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}
