package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// into stores the read's result in dst once it succeeds.
func into[T any](ctx context.Context, dst *T, read func(context.Context) (T, error)) func() error {
	return func() error {
		v, err := read(ctx)
		if err != nil {
			return err
		}

		*dst = v

		return nil
	}
}

// Parallel2 runs two reads at once. The first failure cancels the other
// read and nothing partial is returned.
//
// Dashboard views use it to load their independent sections.
func Parallel2[A, B any](
	ctx context.Context,
	readA func(context.Context) (A, error),
	readB func(context.Context) (B, error),
) (A, B, error) {
	var (
		a A
		b B
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(into(gctx, &a, readA))
	g.Go(into(gctx, &b, readB))

	if err := g.Wait(); err != nil {
		var (
			zeroA A
			zeroB B
		)

		return zeroA, zeroB, fmt.Errorf("parallel read: %w", err)
	}

	return a, b, nil
}

// Parallel3 is Parallel2 for three reads.
func Parallel3[A, B, C any](
	ctx context.Context,
	readA func(context.Context) (A, error),
	readB func(context.Context) (B, error),
	readC func(context.Context) (C, error),
) (A, B, C, error) {
	var (
		a A
		b B
		c C
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(into(gctx, &a, readA))
	g.Go(into(gctx, &b, readB))
	g.Go(into(gctx, &c, readC))

	if err := g.Wait(); err != nil {
		var (
			zeroA A
			zeroB B
			zeroC C
		)

		return zeroA, zeroB, zeroC, fmt.Errorf("parallel read: %w", err)
	}

	return a, b, c, nil
}
