package awesomeqr

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/foundation/pkg/async"
)

// RenderAsync runs Render on a new goroutine and calls exactly one of
// onResult or onError with the outcome. Either callback may be nil.
func RenderAsync(opt RenderOption, onResult func(*RenderResult), onError func(error)) {
	async.Exec(context.Background(), opt, func(_ context.Context, o RenderOption) error {
		res, err := safeRender(o)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return err
		}
		if onResult != nil {
			onResult(res)
		}
		return nil
	})
}

// RenderFuture is the pending outcome of a render started with Go.
type RenderFuture struct {
	res    *RenderResult
	future *async.ExecFuture
}

// Go starts a render on its own goroutine. The context is only checked
// before the render starts; a started render runs to completion.
func Go(ctx context.Context, opt RenderOption) *RenderFuture {
	f := &RenderFuture{}
	f.future = async.Exec(ctx, opt, func(_ context.Context, o RenderOption) error {
		res, err := safeRender(o)
		f.res = res
		return err
	})
	return f
}

// Await blocks until the render finishes.
func (f *RenderFuture) Await() (*RenderResult, error) {
	if err := f.future.Await(); err != nil {
		return nil, err
	}
	return f.res, nil
}

// AwaitWithTimeout waits at most timeout and returns ErrTimeout if the
// render is still running. The render itself keeps going.
func (f *RenderFuture) AwaitWithTimeout(timeout time.Duration) (*RenderResult, error) {
	if err := f.future.AwaitWithTimeout(timeout); err != nil {
		return nil, err
	}
	return f.res, nil
}

// IsComplete reports whether the render has finished, without blocking.
func (f *RenderFuture) IsComplete() bool {
	return f.future.IsComplete()
}

// safeRender turns a panic inside Render into an error so background
// renders always report back.
func safeRender(opt RenderOption) (res *RenderResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, fmt.Errorf("render panicked: %v", p)
		}
	}()
	return Render(opt)
}
