package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/atelier-studio/atelier-service/internal/platform/logging"
	"github.com/atelier-studio/atelier-service/internal/platform/telemetry"
)

// Writes run in five steps:
//
//  1. validate  inputs and preconditions, no side effects
//  2. perform   the write itself (one SQL transaction for a quote)
//  3. verify    what was written matches what was asked
//  4. archive   cache invalidation, Baserow mirror, counters
//  5. respond   the caller's view of the result
//
// The first failing step ends the run with an ExecutionError.

// ExecutionStep names a step of an operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// stepFailures is what each step reports when it fails.
var stepFailures = map[ExecutionStep]string{
	StepValidate: "input validation failed",
	StepPerform:  "operation failed",
	StepVerify:   "verification failed",
	StepArchive:  "side effects failed",
}

// ExecutionError is a step failure. It unwraps to the step's own error so
// domain checks such as domain.IsValidation still see through it.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
	}

	return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionValidationError reports a validate step failure.
func NewExecutionValidationError(message string, cause error) error {
	return &ExecutionError{Step: StepValidate, Message: message, Cause: cause}
}

// Executor runs Operations with one span and one logger per run.
type Executor struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewExecutor creates an executor; a nil logger means slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger, tracer: telemetry.Tracer()}
}

// Operation holds the step functions of a use case. A nil step is skipped
// and hands on its zero value.
type Operation[I, P, V, O any] struct {
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	// Verify re-reads what Perform wrote rather than trusting its return.
	Verify  func(ctx context.Context, input I, performed P) (V, error)
	Archive func(ctx context.Context, input I, verified V) error
	Respond func(ctx context.Context, input I, verified V) (O, error)
}

// step runs fn unless it is nil, logging and wrapping a failure.
func step[T any](ctx context.Context, logger *slog.Logger, name ExecutionStep, fn func() (T, error)) (T, error) {
	var zero T

	if fn == nil {
		return zero, nil
	}

	v, err := fn()
	if err == nil {
		logger.Log(ctx, logging.LevelTrace, "step done", slog.String("step", string(name)))

		return v, nil
	}

	level := slog.LevelError
	if name == StepValidate || name == StepRespond {
		level = slog.LevelWarn
	}

	logger.Log(ctx, level, "step failed", slog.String("step", string(name)), slog.Any("error", err))

	if name == StepRespond {
		return zero, err
	}

	return zero, &ExecutionError{Step: name, Message: stepFailures[name], Cause: err}
}

// bind adapts a step function to step's signature; nil stays nil.
func bind[T any](ok bool, fn func() (T, error)) func() (T, error) {
	if !ok {
		return nil
	}

	return fn
}

// Execute runs op against input.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (out O, err error) {
	ctx, span := exec.tracer.Start(ctx, "app."+op.Name)
	defer func() {
		if err != nil {
			if s, ok := GetExecutionStep(err); ok {
				span.SetAttributes(attribute.String("app.failed_step", string(s)))
			}

			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	logger, ok := logging.Lookup(ctx)
	if !ok {
		logger = exec.logger
	}

	logger = logger.With(slog.String("operation", op.Name))
	start := time.Now()

	if _, err = step(ctx, logger, StepValidate, bind(op.Validate != nil, func() (struct{}, error) {
		return struct{}{}, op.Validate(ctx, input)
	})); err != nil {
		return out, err
	}

	performed, err := step(ctx, logger, StepPerform, bind(op.Perform != nil, func() (P, error) {
		return op.Perform(ctx, input)
	}))
	if err != nil {
		return out, err
	}

	verified, err := step(ctx, logger, StepVerify, bind(op.Verify != nil, func() (V, error) {
		return op.Verify(ctx, input, performed)
	}))
	if err != nil {
		return out, err
	}

	if _, err = step(ctx, logger, StepArchive, bind(op.Archive != nil, func() (struct{}, error) {
		return struct{}{}, op.Archive(ctx, input, verified)
	})); err != nil {
		return out, err
	}

	out, err = step(ctx, logger, StepRespond, bind(op.Respond != nil, func() (O, error) {
		return op.Respond(ctx, input, verified)
	}))
	if err != nil {
		return out, err
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return out, nil
}

// IsExecutionError reports whether err came out of a step.
func IsExecutionError(err error) bool {
	_, ok := GetExecutionStep(err)

	return ok
}

// GetExecutionStep returns the step err failed in.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		return "", false
	}

	return execErr.Step, true
}
