package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/afex/hystrix-go/hystrix"
)

// ErrEmptyCommand is returned when a command has nothing to execute.
var ErrEmptyCommand = errors.New("command is nil or empty")

// ExecFunc is a single attempt against one circuit.
type ExecFunc func(ctx context.Context) error

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as an answer rather than a failure: it is returned to the caller
// as is, does not count against the circuit and stops the fallback chain.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type CommandResult struct {
	err       error
	circuit   string
	cancelled bool
}

func (cr CommandResult) Error() error {
	return cr.err
}

// Circuit is the name of the circuit that produced the result, empty if none did.
func (cr CommandResult) Circuit() string {
	return cr.circuit
}

func (cr CommandResult) Cancelled() bool {
	return cr.cancelled
}

type Command struct {
	ctx      context.Context
	functors []*Functor
}

func NewCommand(ctx context.Context, functors []*Functor) *Command {
	return &Command{
		ctx:      ctx,
		functors: functors,
	}
}

func (cmd *Command) Add(ftor *Functor) {
	cmd.functors = append(cmd.functors, ftor)
}

func (cmd *Command) IsEmpty() bool {
	return len(cmd.functors) == 0
}

// Config mirrors hystrix.CommandConfig. Zero values fall back to hystrix defaults.
type Config struct {
	Timeout                int
	MaxConcurrentRequests  int
	RequestVolumeThreshold int
	SleepWindow            int
	ErrorPercentThreshold  int
}

type CircuitBreaker struct {
	config Config
}

func NewCircuitBreaker(config Config) *CircuitBreaker {
	return &CircuitBreaker{
		config: config,
	}
}

type Functor struct {
	exec        ExecFunc
	circuitName string
}

func NewFunctor(exec ExecFunc, circuitName string) *Functor {
	return &Functor{
		exec:        exec,
		circuitName: circuitName,
	}
}

// Execute runs the functors in order until one succeeds or returns a Permanent error.
// Circuits are configured lazily with the breaker's config.
// This is a blocking function.
func (cb *CircuitBreaker) Execute(cmd *Command) CommandResult {
	if cmd == nil || cmd.IsEmpty() {
		return CommandResult{err: ErrEmptyCommand}
	}

	var result CommandResult
	ctx := cmd.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	for _, f := range cmd.functors {
		if ctx.Err() != nil {
			result.cancelled = true
			if result.err == nil {
				result.err = ctx.Err()
			}
			break
		}

		if hystrix.GetCircuitSettings()[f.circuitName] == nil {
			hystrix.ConfigureCommand(f.circuitName, hystrix.CommandConfig{
				Timeout:                cb.config.Timeout,
				MaxConcurrentRequests:  cb.config.MaxConcurrentRequests,
				RequestVolumeThreshold: cb.config.RequestVolumeThreshold,
				SleepWindow:            cb.config.SleepWindow,
				ErrorPercentThreshold:  cb.config.ErrorPercentThreshold,
			})
		}

		// hystrix may leave exec running after a timeout, so it must only see
		// values bound to this iteration.
		exec, circuitName := f.exec, f.circuitName
		var (
			mu        sync.Mutex
			permanent error
		)
		err := hystrix.DoC(ctx, circuitName, func(ctx context.Context) error {
			err := exec(ctx)
			var p *permanentError
			if errors.As(err, &p) {
				mu.Lock()
				permanent = p.err
				mu.Unlock()
				return nil
			}
			return err
		}, nil)

		if err == nil {
			mu.Lock()
			defer mu.Unlock()
			return CommandResult{err: permanent, circuit: circuitName}
		}

		// Accumulate errors
		if result.err != nil {
			result.err = fmt.Errorf("%w, %s.error: %w", result.err, f.circuitName, err)
		} else {
			result.err = fmt.Errorf("%s.error: %w", f.circuitName, err)
		}
	}

	return result
}

func CircuitExists(name string) bool {
	_, ok := hystrix.GetCircuitSettings()[name]
	return ok
}

func IsCircuitOpen(name string) bool {
	c, _, _ := hystrix.GetCircuit(name)
	return c != nil && c.IsOpen()
}
