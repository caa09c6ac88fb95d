// Copyright 2025 go-accelerate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package accel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Dispatcher is the public entry point: it owns a registry of kernels and
// the process-scoped specialization cache, and routes each call either to
// a specialized variant or to the kernel's reference body.
//
// The cache is injected state, not an ambient global: two Dispatchers
// never share variants unless constructed around the same Cache.
type Dispatcher struct {
	reg       *Registry
	cache     *Cache
	cfg       Config
	log       *slog.Logger
	noCompile bool

	hits      atomic.Int64
	misses    atomic.Int64
	fallbacks atomic.Int64
}

// New builds a Dispatcher over the given registry with an empty cache.
func New(reg *Registry, cfg Config) *Dispatcher {
	return &Dispatcher{
		reg:       reg,
		cache:     NewCache(),
		cfg:       cfg,
		log:       cfg.logger(),
		noCompile: cfg.DisableCompilation || noCompileEnv(),
	}
}

// Invoke runs the named kernel on args.
//
// The first call with a novel signature pays the specialization latency;
// every later call with that signature dispatches straight to the cached
// variant. Signatures the kernel cannot be specialized for are served by
// its reference body with identical semantics. Identical inputs produce
// identical outputs on either path, up to the floating-point tolerance
// each kernel documents.
//
// ctx bounds only this caller's wait: cancelling it while a build is in
// flight abandons the call, never the build.
func (d *Dispatcher) Invoke(ctx context.Context, kernel string, args ...Value) (Value, error) {
	k, ok := d.reg.Lookup(kernel)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrKernelNotFound, kernel)
	}

	sig := SignatureOf(args...)
	if d.noCompile || k.Build == nil || !sig.Supported() || k.rejects(sig) {
		return d.fallback(k, args)
	}

	if v, ok := d.cache.Resolve(kernel, sig); ok {
		d.hits.Add(1)
		return v.Invoke(args)
	}
	// A signature the builder already rejected is not a miss: the call is
	// permanently pinned to the reference body.
	if d.cache.Rejected(kernel, sig) {
		return d.fallback(k, args)
	}
	d.misses.Add(1)

	bctx := ctx
	if d.cfg.CompileTimeout > 0 {
		var cancel context.CancelFunc
		bctx, cancel = context.WithTimeout(ctx, d.cfg.CompileTimeout)
		defer cancel()
	}

	v, err := d.cache.BuildAndInsert(bctx, k, sig)
	if err != nil {
		var unsup *UnsupportedSignatureError
		switch {
		case errors.As(err, &unsup):
			return d.fallback(k, args)
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			// Our CompileTimeout fired, not the caller's deadline. The
			// build keeps running; serve this call uncompiled.
			d.log.Warn("accel: compile timeout, serving fallback",
				"kernel", kernel, "signature", sig.String(), "timeout", d.cfg.CompileTimeout)
			return d.fallback(k, args)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return Value{}, err
		default:
			if d.cfg.FallbackOnFailure {
				d.log.Warn("accel: build failed, serving fallback",
					"kernel", kernel, "signature", sig.String(), "error", err)
				return d.fallback(k, args)
			}
			return Value{}, err
		}
	}

	d.log.Info("accel: specialized kernel",
		"kernel", kernel, "signature", sig.String(), "build_time", v.BuildTime())
	return v.Invoke(args)
}

// Warmup pre-builds every entry in the configured warm list so the build
// latency is paid here instead of on first use. Entries whose signature
// the kernel rejects are skipped; unknown kernel names are errors.
func (d *Dispatcher) Warmup(ctx context.Context) error {
	if d.noCompile {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, w := range d.cfg.WarmList {
		w := w
		g.Go(func() error {
			k, ok := d.reg.Lookup(w.Kernel)
			if !ok {
				return fmt.Errorf("%w: warm list entry %q", ErrKernelNotFound, w.Kernel)
			}
			if k.Build == nil || !w.Sig.Supported() || k.rejects(w.Sig) {
				d.log.Warn("accel: warm list entry not specializable",
					"kernel", w.Kernel, "signature", w.Sig.String())
				return nil
			}
			_, err := d.cache.BuildAndInsert(ctx, k, w.Sig)
			var unsup *UnsupportedSignatureError
			if errors.As(err, &unsup) {
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

// Cache exposes the dispatcher's specialization cache for diagnostics.
func (d *Dispatcher) Cache() *Cache { return d.cache }

// Registry returns the kernel registry the dispatcher serves.
func (d *Dispatcher) Registry() *Registry { return d.reg }

// Stats is a snapshot of dispatch counters.
type Stats struct {
	Hits      int64 // calls served by an already-published variant
	Misses    int64 // calls that had to wait on a build
	Builds    int64 // builds started (at most one per key at a time)
	Fallbacks int64 // calls served by a reference body
	Variants  int64 // variants currently published
}

// Stats returns current dispatch counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Hits:      d.hits.Load(),
		Misses:    d.misses.Load(),
		Builds:    d.cache.Builds(),
		Fallbacks: d.fallbacks.Load(),
		Variants:  int64(d.cache.Len()),
	}
}
