package feedback

import (
	"context"
	"errors"
	"sync"
)

// Pass is the handle of one Validate call. Fields and Err describe the
// synchronous outcome; Wait and Done follow the async resolutions.
type Pass struct {
	ID     string
	Fields []FieldState
	Err    error

	wg   sync.WaitGroup
	done chan struct{}

	mu   sync.Mutex
	errs []error
}

func newPass(id string) *Pass {
	return &Pass{ID: id, done: make(chan struct{})}
}

// Done is closed once every resolver started by the pass has returned and
// its result was merged or discarded.
func (p *Pass) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until Done or ctx ends. It returns the joined resolver
// failures that were merged into the registry, or ctx.Err().
func (p *Pass) Wait(ctx context.Context) error {
	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

func (p *Pass) fail(err error) {
	p.mu.Lock()
	p.errs = append(p.errs, err)
	p.mu.Unlock()
}

// seal closes Done after the last started resolver finished.
func (p *Pass) seal() {
	go func() {
		p.wg.Wait()
		close(p.done)
	}()
}
