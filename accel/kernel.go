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
	"fmt"
	"sort"
	"sync"
)

// Fn is the calling convention shared by reference bodies and specialized
// variants: pure in, value out. Implementations must be reentrant — the
// same Fn is invoked concurrently once published.
type Fn func(args []Value) (Value, error)

// BuildFunc monomorphizes a kernel for one concrete signature. It is the
// expensive step the specialization cache guards; it runs at most once
// per (kernel, signature) key at a time. Returning ErrUnsupported
// (possibly wrapped) declares the signature outside the kernel's compiled
// domain, routing it to the reference body instead. Any other error is
// treated as transient and the key stays retryable.
type BuildFunc func(sig TypeSignature) (Fn, error)

// Kernel is a pure numeric function registered for specialization.
//
// Ref is the reference body: it must serve every supported signature via
// the Buffer element accessors and is the ground truth the compiled
// variants are measured against. Build produces the specialized variants;
// a nil Build pins the kernel to the fallback path permanently. Rejects,
// when non-nil, short-circuits signatures the kernel is known not to
// support, skipping the build attempt entirely.
//
// Both paths must validate inputs identically: a shape mismatch is
// reported by the compiled variant and the reference body under exactly
// the same conditions.
type Kernel struct {
	Name    string
	Ref     Fn
	Build   BuildFunc
	Rejects func(sig TypeSignature) bool
}

func (k *Kernel) rejects(sig TypeSignature) bool {
	return k.Rejects != nil && k.Rejects(sig)
}

// Registry holds the kernels a Dispatcher can serve. It is safe for
// concurrent use; registration typically happens once at startup.
type Registry struct {
	mu      sync.RWMutex
	kernels map[string]*Kernel
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kernels: make(map[string]*Kernel)}
}

// Register adds a kernel. The name must be unique and the reference body
// must be present: without it there is nothing to serve unsupported
// signatures or to validate variants against.
func (r *Registry) Register(k *Kernel) error {
	if k.Name == "" {
		return fmt.Errorf("accel: kernel with empty name")
	}
	if k.Ref == nil {
		return fmt.Errorf("accel: kernel %q has no reference body", k.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.kernels[k.Name]; dup {
		return fmt.Errorf("accel: kernel %q already registered", k.Name)
	}
	r.kernels[k.Name] = k
	return nil
}

// MustRegister is Register that panics on error, for package init wiring.
func (r *Registry) MustRegister(k *Kernel) {
	if err := r.Register(k); err != nil {
		panic(err)
	}
}

// Lookup returns the kernel registered under name.
func (r *Registry) Lookup(name string) (*Kernel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kernels[name]
	return k, ok
}

// Names returns the registered kernel names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
