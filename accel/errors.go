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
	"errors"
	"fmt"
)

// Machinery errors (extraction, lookup, compilation bookkeeping) carry
// distinct types so callers can separate them from kernel-domain errors,
// which propagate unchanged from whichever path executed the kernel.

// ErrKernelNotFound is returned by Invoke when no kernel with the given
// name is registered.
var ErrKernelNotFound = errors.New("accel: kernel not found")

// ErrUnsupported is returned by a kernel builder to signal that no
// specialized variant exists for the requested signature. The dispatcher
// routes such calls to the fallback path; the error never reaches callers.
var ErrUnsupported = errors.New("accel: signature not supported for specialization")

// ErrShapeMismatch is the conventional kernel-domain error for buffer
// arguments whose shapes do not agree. Both the compiled and the fallback
// path of a kernel must report it under identical conditions.
var ErrShapeMismatch = errors.New("accel: buffer shape mismatch")

// UnsupportedSignatureError records a builder's rejection of a
// signature. Invoke absorbs it by serving the reference body; it is only
// observable through the Cache API.
type UnsupportedSignatureError struct {
	Kernel string
	Sig    TypeSignature
}

func (e *UnsupportedSignatureError) Error() string {
	return fmt.Sprintf("accel: kernel %q does not support signature %s", e.Kernel, e.Sig)
}

// CompileError reports a transient failure while building a specialized
// variant. The failing key is not poisoned: the next call with the same
// signature retries the build. Every caller waiting on the failed build
// receives the same CompileError.
type CompileError struct {
	Kernel string
	Sig    TypeSignature
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("accel: building %q for %s: %v", e.Kernel, e.Sig, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }
