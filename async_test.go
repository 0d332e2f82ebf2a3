package awesomeqr_test

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/dmitrymomot/foundation/pkg/async"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oza6ut0ne/awesomeqr"
)

func TestRenderAsync(t *testing.T) {
	t.Parallel()

	t.Run("result callback", func(t *testing.T) {
		t.Parallel()
		results := make(chan *awesomeqr.RenderResult, 1)
		errs := make(chan error, 1)

		awesomeqr.RenderAsync(helloOption(),
			func(res *awesomeqr.RenderResult) { results <- res },
			func(err error) { errs <- err },
		)

		select {
		case res := <-results:
			assert.Equal(t, image.Rect(0, 0, 256, 256), res.Image.Bounds())
		case err := <-errs:
			t.Fatalf("unexpected error: %v", err)
		case <-time.After(30 * time.Second):
			t.Fatal("no callback")
		}
		assert.Empty(t, errs)
	})

	t.Run("error callback", func(t *testing.T) {
		t.Parallel()
		results := make(chan *awesomeqr.RenderResult, 1)
		errs := make(chan error, 1)

		opt := helloOption()
		opt.PatternScale = 1.5
		awesomeqr.RenderAsync(opt,
			func(res *awesomeqr.RenderResult) { results <- res },
			func(err error) { errs <- err },
		)

		select {
		case err := <-errs:
			assert.ErrorIs(t, err, awesomeqr.ErrInvalidConfig)
		case <-results:
			t.Fatal("result callback called for an invalid option")
		case <-time.After(30 * time.Second):
			t.Fatal("no callback")
		}
	})

	t.Run("nil callbacks", func(t *testing.T) {
		t.Parallel()
		assert.NotPanics(t, func() {
			awesomeqr.RenderAsync(helloOption(), nil, nil)
		})
	})
}

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("await", func(t *testing.T) {
		t.Parallel()
		f := awesomeqr.Go(context.Background(), helloOption())

		res, err := f.Await()
		require.NoError(t, err)
		assert.True(t, f.IsComplete())
		assert.Equal(t, awesomeqr.OutputStill, res.Type)

		// a finished future keeps its outcome
		again, err := f.AwaitWithTimeout(time.Millisecond)
		require.NoError(t, err)
		assert.Same(t, res, again)
	})

	t.Run("invalid option", func(t *testing.T) {
		t.Parallel()
		opt := helloOption()
		opt.Content = ""

		_, err := awesomeqr.Go(context.Background(), opt).AwaitWithTimeout(30 * time.Second)
		assert.ErrorIs(t, err, awesomeqr.ErrInvalidConfig)
	})

	t.Run("canceled before start", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := awesomeqr.Go(ctx, helloOption()).Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, res)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		opt := awesomeqr.DefaultRenderOption("a large render that takes a while")
		opt.Size = 4000
		opt.RoundedPatterns = true

		f := awesomeqr.Go(context.Background(), opt)
		_, err := f.AwaitWithTimeout(time.Nanosecond)
		if f.IsComplete() {
			t.Skip("render finished before the deadline")
		}
		assert.ErrorIs(t, err, awesomeqr.ErrTimeout)
		assert.ErrorIs(t, err, async.ErrTimeout)

		_, err = f.Await()
		assert.NoError(t, err)
	})
}
