package notification

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func TestDispatcher_WaitDrainsInFlight(t *testing.T) {
	d := NewDispatcher(logger.NewNop())
	release := make(chan struct{})
	var finished atomic.Int32

	for i := 0; i < 3; i++ {
		d.Go(func() {
			<-release
			finished.Add(1)
		})
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- d.Wait(context.Background()) }()

	select {
	case <-waitErr:
		t.Fatal("Wait returned before in-flight notifications finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-waitErr)
	assert.Equal(t, int32(3), finished.Load())
}

func TestDispatcher_RejectsAfterWait(t *testing.T) {
	d := NewDispatcher(logger.NewNop())
	require.NoError(t, d.Wait(context.Background()))

	called := false
	d.Go(func() { called = true })

	assert.False(t, called)
	assert.Equal(t, 1, d.dropped)
}

func TestDispatcher_WaitHonorsDeadline(t *testing.T) {
	d := NewDispatcher(logger.NewNop())
	release := make(chan struct{})
	defer close(release)
	d.Go(func() { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)
}
