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
	"sync/atomic"
	"time"
)

// Variant is a kernel specialized for exactly one TypeSignature. It is
// created by the cache's build step, never mutated after publication, and
// safe for concurrent invocation. A Variant lives until process teardown;
// there is no eviction.
type Variant struct {
	kernel    string
	sig       TypeSignature
	fn        Fn
	buildTime time.Duration
	calls     atomic.Int64
}

// Invoke runs the specialized function.
func (v *Variant) Invoke(args []Value) (Value, error) {
	v.calls.Add(1)
	return v.fn(args)
}

// Kernel returns the name of the kernel this variant specializes.
func (v *Variant) Kernel() string { return v.kernel }

// Signature returns the signature the variant was built for.
func (v *Variant) Signature() TypeSignature { return v.sig }

// BuildTime returns how long the build step took.
func (v *Variant) BuildTime() time.Duration { return v.buildTime }

// Calls returns how many times the variant has been invoked.
func (v *Variant) Calls() int64 { return v.calls.Load() }
