package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// SearchParams configures Search.
type SearchParams struct {
	// Target is the value wanted in ResultAddr after the program halts.
	Target     int64
	ResultAddr uint

	// Max is the inclusive upper bound for both noun and verb.
	Max int64

	NounAddr uint
	VerbAddr uint

	// Workers bounds the number of concurrent candidate runs; defaults to
	// GOMAXPROCS.
	Workers int
}

// SearchResult is the winning candidate of a Search.
type SearchResult struct {
	Noun  int64
	Verb  int64
	Tried int64
}

// Answer returns 100*noun + verb.
func (res SearchResult) Answer() int64 { return 100*res.Noun + res.Verb }

// ErrNotFound is returned by Search when no candidate produces the target.
var ErrNotFound = errors.New("no noun and verb produce the target")

// Search tries every noun and verb in [0, Max] against independent clones of
// vm, patching the noun and verb cells before running each clone to halt.
// The match with the lowest Answer wins; vm itself is never run or mutated.
// Candidates that fail with a fatal error simply do not match.
func Search(ctx context.Context, vm *VM, params SearchParams) (SearchResult, error) {
	if params.Max < 0 {
		return SearchResult{}, fmt.Errorf("invalid search max %v", params.Max)
	}
	workers := params.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		mu    sync.Mutex
		best  *SearchResult
		tried atomic.Int64
	)
	beaten := func(noun int64) bool {
		mu.Lock()
		defer mu.Unlock()
		return best != nil && best.Noun < noun
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for noun := int64(0); noun <= params.Max; noun++ {
		noun := noun
		eg.Go(func() error {
			for verb := int64(0); verb <= params.Max; verb++ {
				if beaten(noun) {
					return nil
				}
				match, err := tryCandidate(ctx, vm, params, noun, verb)
				tried.Add(1)
				if err != nil {
					return err
				}
				if match {
					mu.Lock()
					if best == nil || noun < best.Noun || (noun == best.Noun && verb < best.Verb) {
						best = &SearchResult{Noun: noun, Verb: verb}
					}
					mu.Unlock()
					return nil
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return SearchResult{}, err
	}
	if best == nil {
		return SearchResult{Tried: tried.Load()}, ErrNotFound
	}
	res := *best
	res.Tried = tried.Load()
	return res, nil
}

func tryCandidate(ctx context.Context, vm *VM, params SearchParams, noun, verb int64) (bool, error) {
	c := vm.Clone()
	defer c.withLogPrefix(fmt.Sprintf("%v,%v ", noun, verb))()
	if err := c.SetIndex(params.NounAddr, noun); err != nil {
		return false, err
	}
	if err := c.SetIndex(params.VerbAddr, verb); err != nil {
		return false, err
	}
	if err := c.RunUntilHalt(ctx); err != nil {
		if isContextErr(err) {
			return false, err
		}
		if c.verbose > 0 {
			c.logf("#", "candidate failed: %v", err)
		}
		return false, nil
	}
	return c.GetIndex(params.ResultAddr) == params.Target, nil
}
