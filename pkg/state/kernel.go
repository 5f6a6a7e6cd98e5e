package state

import (
	"context"
	"errors"
	"fmt"
)

type launch struct {
	n *node
	v any
}

// kernel drives one dispatch to settlement. Pure steps run on the goroutine
// that owns the kernel; effect handlers run elsewhere and hand a continuation
// back through done.
type kernel struct {
	ctx     context.Context
	scope   *Scope
	done    chan func()
	queue   []launch
	later   []func()
	errs    []error
	pending int
}

func newKernel(ctx context.Context, scope *Scope) *kernel {
	if ctx == nil {
		ctx = context.Background()
	}
	return &kernel{
		ctx:   ctx,
		scope: scope,
		done:  make(chan func()),
	}
}

func (k *kernel) launch(n *node, v any) {
	k.queue = append(k.queue, launch{n: n, v: v})
}

// barrier schedules fn to run once every queued launch has executed,
// so it observes store writes made in the same tick.
func (k *kernel) barrier(fn func()) {
	k.later = append(k.later, fn)
}

func (k *kernel) fail(err error) {
	k.errs = append(k.errs, err)
}

// settle drains the queue, waits for in-flight effects and repeats until
// nothing is left to run.
func (k *kernel) settle() error {
	for {
		for len(k.queue) > 0 {
			next := k.queue[0]
			k.queue = k.queue[1:]
			k.exec(next)
		}

		if len(k.later) > 0 {
			fn := k.later[0]
			k.later = k.later[1:]
			k.guard(k.scope, fn)
			continue
		}

		if k.pending == 0 {
			return errors.Join(k.errs...)
		}

		cont := <-k.done
		k.pending--
		if cont != nil {
			k.guard(k.scope, cont)
		}
	}
}

func (k *kernel) exec(l launch) {
	v := l.v
	if l.n.run != nil {
		pass := false
		if !k.guard(l.n, func() { v, pass = l.n.run(k, v) }) || !pass {
			return
		}
	}

	for _, step := range l.n.downstream() {
		k.guard(l.n, func() { step(k, v) })
	}
}

// spawn runs work on its own goroutine. The returned continuation is
// executed on the kernel goroutine once the loop picks it up.
func (k *kernel) spawn(origin fmt.Stringer, work func() func()) {
	k.pending++
	go func() {
		var cont func()
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("%w: %s: %v", ErrPanic, origin, r)
				cont = func() { k.fail(err) }
			}
			k.done <- cont
		}()
		cont = work()
	}()
}

func (k *kernel) guard(origin fmt.Stringer, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			k.fail(fmt.Errorf("%w: %s: %v", ErrPanic, origin, r))
			ok = false
		}
	}()
	fn()
	return true
}
