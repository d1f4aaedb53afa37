package led

import (
	"sync"

	"github.com/coreman2200/funtimes-trilight/internal/effect"
)

// Fake records frames for tests and headless checks.
type Fake struct {
	mu     sync.Mutex
	writes int
	closed int
	last   []effect.Frame
}

func (f *Fake) Write(frame []effect.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.last = append(f.last[:0], frame...)
	return nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *Fake) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *Fake) Closes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Fake) Last() []effect.Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]effect.Frame(nil), f.last...)
}
