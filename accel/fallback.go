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

// fallback executes the kernel's reference body directly. This is the
// uncompiled path: stride-aware element access through Buffer.At/SetAt,
// no layout assumptions, no specialization. It serves calls when
// compilation is disabled, when the signature is outside the kernel's
// compiled domain, and when a compiling caller times out.
//
// Kernel-domain errors from the reference body propagate unchanged, the
// same way they would from a specialized variant.
func (d *Dispatcher) fallback(k *Kernel, args []Value) (Value, error) {
	d.fallbacks.Add(1)
	return k.Ref(args)
}
