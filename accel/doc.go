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

// Package accel implements lazy per-type-signature specialization of
// numeric kernels.
//
// A kernel is a pure numeric function over fixed-layout buffers and
// scalars. The first time a kernel is invoked with a previously unseen
// combination of argument types, the dispatcher builds a variant of the
// kernel specialized for exactly that combination (element kind, rank,
// memory layout), publishes it into a process-wide cache, and routes the
// call directly to it, along with every later call sharing the signature.
// Signatures outside a kernel's supported domain are served by the
// kernel's reference body instead, with identical semantics.
//
// # Call flow
//
//	caller → Dispatcher.Invoke
//	       → SignatureOf(args)            cheap, allocation-free
//	       → Cache.Resolve                read-only, never blocks
//	   hit → Variant.Invoke               direct call
//	  miss → Cache.BuildAndInsert         at most one build per key
//	       → Variant.Invoke
//
// Unsupported or rejected signatures skip the cache entirely and run the
// reference body (the fallback path).
//
// # Building a kernel
//
// A kernel registers three things: a stable name, a reference body that
// works for every supported signature via the Buffer element accessors,
// and a builder that monomorphizes the kernel for one concrete signature
// into a direct, layout-fixed function:
//
//	k := &accel.Kernel{
//	    Name: "scale",
//	    Ref:  refScale,   // interpreter path, stride-aware
//	    Build: func(sig accel.TypeSignature) (accel.Fn, error) {
//	        switch sig.At(0).Kind {
//	        case accel.KindFloat64:
//	            return scaleVariant64(sig), nil
//	        case accel.KindFloat32:
//	            return scaleVariant32(sig), nil
//	        }
//	        return nil, accel.ErrUnsupported
//	    },
//	}
//
// The build step is the expensive, once-per-signature operation the cache
// guards; variants are immutable after publication and safe for
// concurrent invocation.
//
// # Concurrency
//
// Invoke may be called from any number of goroutines. Callers racing on
// the first use of one (kernel, signature) key are coalesced: exactly one
// build runs, all racers receive the same published variant, and a build
// failure is reported to every waiter while the key stays open for retry.
// Calls on other keys are never blocked by an in-flight build.
//
// The cache grows without bound by design: signature cardinality per
// kernel is the product of element kinds, ranks and layout classes, which
// is small and finite in practice.
package accel
