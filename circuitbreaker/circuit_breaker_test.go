package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/afex/hystrix-go/hystrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueName(prefix string) string {
	// unique name to avoid conflicts with go tests `-count` option
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func TestCircuitBreaker_ExecuteSuccessSingle(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		Timeout:                1000,
		MaxConcurrentRequests:  100,
		RequestVolumeThreshold: 10,
		SleepWindow:            10,
		ErrorPercentThreshold:  10,
	})

	circuitName := uniqueName("SuccessSingle")
	called := 0
	cmd := NewCommand(context.TODO(), []*Functor{
		NewFunctor(func(context.Context) error {
			called++
			return nil
		}, circuitName)},
	)

	result := cb.Execute(cmd)
	require.NoError(t, result.Error())
	require.Equal(t, circuitName, result.Circuit())
	require.False(t, result.Cancelled())
	require.Equal(t, 1, called)
	require.True(t, CircuitExists(circuitName))
}

func TestCircuitBreaker_ExecuteMultipleFallbacksFail(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		Timeout:                10,
		MaxConcurrentRequests:  100,
		RequestVolumeThreshold: 10,
		SleepWindow:            10,
		ErrorPercentThreshold:  10,
	})

	circuitName := uniqueName("ExecuteMultipleFallbacksFail")
	errSecProvFailed := errors.New("provider 2 failed")
	errThirdProvFailed := errors.New("provider 3 failed")
	cmd := NewCommand(context.TODO(), []*Functor{
		NewFunctor(func(context.Context) error {
			time.Sleep(100 * time.Millisecond) // will cause hystrix: timeout
			return nil
		}, circuitName+"1"),
		NewFunctor(func(context.Context) error {
			return errSecProvFailed
		}, circuitName+"2"),
		NewFunctor(func(context.Context) error {
			return errThirdProvFailed
		}, circuitName+"3"),
	})

	result := cb.Execute(cmd)
	require.Error(t, result.Error())
	assert.True(t, errors.Is(result.Error(), hystrix.ErrTimeout))
	assert.True(t, errors.Is(result.Error(), errSecProvFailed))
	assert.True(t, errors.Is(result.Error(), errThirdProvFailed))
	assert.Empty(t, result.Circuit())
}

func TestCircuitBreaker_TimedOutFunctorRunsOnlyItself(t *testing.T) {
	cb := NewCircuitBreaker(Config{Timeout: 10})

	circuitName := uniqueName("TimedOutFunctor")
	var slowCalls, fastCalls atomic.Int32
	slowDone := make(chan struct{})
	cmd := NewCommand(context.TODO(), []*Functor{
		NewFunctor(func(context.Context) error {
			defer close(slowDone)
			time.Sleep(50 * time.Millisecond) // will cause hystrix: timeout
			slowCalls.Add(1)
			return nil
		}, circuitName+"1"),
		NewFunctor(func(context.Context) error {
			fastCalls.Add(1)
			return nil
		}, circuitName+"2"),
	})

	result := cb.Execute(cmd)
	require.NoError(t, result.Error())
	require.Equal(t, circuitName+"2", result.Circuit())

	select {
	case <-slowDone:
	case <-time.After(time.Second):
		t.Fatal("timed out functor never finished")
	}
	require.Equal(t, int32(1), slowCalls.Load())
	require.Equal(t, int32(1), fastCalls.Load())
}

func TestCircuitBreaker_ExecuteFallbackSucceeds(t *testing.T) {
	cb := NewCircuitBreaker(Config{Timeout: 1000})

	circuitName := uniqueName("FallbackSucceeds")
	cmd := NewCommand(context.TODO(), nil)
	cmd.Add(NewFunctor(func(context.Context) error {
		return errors.New("provider 1 failed")
	}, circuitName+"1"))
	cmd.Add(NewFunctor(func(context.Context) error {
		return nil
	}, circuitName+"2"))

	result := cb.Execute(cmd)
	require.NoError(t, result.Error())
	require.Equal(t, circuitName+"2", result.Circuit())
}

func TestCircuitBreaker_PermanentErrorStopsChain(t *testing.T) {
	cb := NewCircuitBreaker(Config{Timeout: 1000})

	circuitName := uniqueName("Permanent")
	errReverted := errors.New("execution reverted")
	secondCalled := false
	cmd := NewCommand(context.TODO(), []*Functor{
		NewFunctor(func(context.Context) error {
			return Permanent(errReverted)
		}, circuitName+"1"),
		NewFunctor(func(context.Context) error {
			secondCalled = true
			return nil
		}, circuitName+"2"),
	})

	result := cb.Execute(cmd)
	require.Equal(t, errReverted, result.Error())
	require.Equal(t, circuitName+"1", result.Circuit())
	require.False(t, secondCalled)
	require.False(t, IsCircuitOpen(circuitName+"1"))
}

func TestCircuitBreaker_EmptyCommand(t *testing.T) {
	cb := NewCircuitBreaker(Config{})
	require.ErrorIs(t, cb.Execute(nil).Error(), ErrEmptyCommand)
	require.ErrorIs(t, cb.Execute(NewCommand(context.TODO(), nil)).Error(), ErrEmptyCommand)
}

func TestCircuitBreaker_CancelledContext(t *testing.T) {
	cb := NewCircuitBreaker(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	cmd := NewCommand(ctx, []*Functor{
		NewFunctor(func(context.Context) error {
			called = true
			return nil
		}, uniqueName("Cancelled")),
	})

	result := cb.Execute(cmd)
	require.True(t, result.Cancelled())
	require.ErrorIs(t, result.Error(), context.Canceled)
	require.False(t, called)
}

func TestPermanentNil(t *testing.T) {
	require.NoError(t, Permanent(nil))
}
