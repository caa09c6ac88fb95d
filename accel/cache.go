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
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheKey struct {
	kernel string
	sig    TypeSignature
}

// Cache maps (kernel, signature) to the published specialized variant.
// It is the only shared mutable state in the package.
//
// Resolve is a plain read-locked lookup and never blocks on builds. All
// mutation goes through BuildAndInsert, which coalesces concurrent
// callers of the same key into a single build (the singleflight group is
// the in-flight marker) and publishes the finished variant with one
// write under the lock. Entries are append-only: nothing is evicted for
// the life of the process. A transient build failure inserts nothing, so
// its key simply remains open for the next caller; a signature the
// builder declares unsupported is remembered, so it is never re-attempted.
type Cache struct {
	mu       sync.RWMutex
	variants map[cacheKey]*Variant
	rejected map[cacheKey]*UnsupportedSignatureError

	flight singleflight.Group
	builds atomic.Int64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		variants: make(map[cacheKey]*Variant),
		rejected: make(map[cacheKey]*UnsupportedSignatureError),
	}
}

// Resolve looks up the published variant for (kernel, sig). It never
// blocks behind an in-flight build: concurrent misses are possible and
// are resolved by BuildAndInsert.
func (c *Cache) Resolve(kernel string, sig TypeSignature) (*Variant, bool) {
	c.mu.RLock()
	v, ok := c.variants[cacheKey{kernel, sig}]
	c.mu.RUnlock()
	return v, ok
}

// BuildAndInsert resolves a miss. Exactly one build per key runs at a
// time; every caller racing on the key receives the same published
// variant, or the same error if the build fails. The build itself is not
// cancellable: once started it completes (or fails) and publishes even if
// every waiting caller has gone away, so an abandoned call can never
// leave a half-built variant behind. ctx only bounds how long this caller
// waits.
//
// A *CompileError return is transient: the key stays open and the next
// call retries the build. An *UnsupportedSignatureError is permanent: the
// rejection is memoized and later calls on the key skip the builder.
func (c *Cache) BuildAndInsert(ctx context.Context, k *Kernel, sig TypeSignature) (*Variant, error) {
	key := cacheKey{k.Name, sig}
	if rej := c.rejection(key); rej != nil {
		return nil, rej
	}
	ch := c.flight.DoChan(k.Name+"\x00"+sig.String(), func() (any, error) {
		// A racer may have published between our miss and joining the
		// flight; a fresh flight must not rebuild.
		if v, ok := c.Resolve(k.Name, sig); ok {
			return v, nil
		}
		if rej := c.rejection(key); rej != nil {
			return nil, rej
		}
		c.builds.Add(1)
		start := time.Now()
		fn, err := k.Build(sig)
		if err != nil {
			if errors.Is(err, ErrUnsupported) {
				rej := &UnsupportedSignatureError{Kernel: k.Name, Sig: sig}
				c.mu.Lock()
				c.rejected[key] = rej
				c.mu.Unlock()
				return nil, rej
			}
			return nil, &CompileError{Kernel: k.Name, Sig: sig, Err: err}
		}
		v := &Variant{kernel: k.Name, sig: sig, fn: fn, buildTime: time.Since(start)}
		c.mu.Lock()
		c.variants[key] = v
		c.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Variant), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Rejected reports whether the builder has already declared (kernel, sig)
// unsupported. The dispatcher consults it so memoized rejections go
// straight to the fallback path without touching build machinery.
func (c *Cache) Rejected(kernel string, sig TypeSignature) bool {
	return c.rejection(cacheKey{kernel, sig}) != nil
}

func (c *Cache) rejection(key cacheKey) *UnsupportedSignatureError {
	c.mu.RLock()
	rej := c.rejected[key]
	c.mu.RUnlock()
	return rej
}

// Builds returns how many builds have been started. Tests use it to
// verify that warm calls never re-trigger specialization.
func (c *Cache) Builds() int64 { return c.builds.Load() }

// Len returns the number of published variants.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.variants)
}

// Variants returns the published variants sorted by kernel name, then
// signature. For diagnostics; the returned slice is a snapshot.
func (c *Cache) Variants() []*Variant {
	c.mu.RLock()
	out := make([]*Variant, 0, len(c.variants))
	for _, v := range c.variants {
		out = append(out, v)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].kernel != out[j].kernel {
			return out[i].kernel < out[j].kernel
		}
		return out[i].sig.String() < out[j].sig.String()
	})
	return out
}
