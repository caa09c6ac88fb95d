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

// Package vecops registers element-wise vector kernels.
//
// Kernels:
//   - "scale"  (buffer, factor scalar) → buffer of the same kind/shape
//   - "muladd" (x, y, z buffers)       → x*y + z element-wise
//   - "dot"    (a, b buffers)          → scalar Σ a[i]*b[i]
//
// Specialized variants exist for float32 and float64 rank-1 buffers,
// contiguous and strided ("scale") or contiguous only ("muladd", "dot").
// Everything else — half precision, int32, rank-2 buffers, mixed element
// kinds — is served by the reference bodies via widening element access.
//
// # Floating-point tolerance
//
// Reference bodies widen every element to float64 and compute there. For
// float64 inputs the compiled variants are therefore bit-identical to
// the reference. For float32 inputs the variants compute in native
// float32, which rounds after each operation where the reference rounds
// only on the final store: "scale" and "muladd" results may differ by
// one float32 ulp per element, and the "dot" float32 variant additionally
// reorders partial sums, for a relative error on the order of n·2⁻²⁴.
package vecops
