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

import "golang.org/x/sys/cpu"

// VectorHint suggests an accumulator/unroll count for kernel builders,
// derived from the host's SIMD register width: 8 where 512-bit vectors
// are available, 4 for 256-bit, otherwise 2. Builders are free to ignore
// it; it only shifts where the compiler's auto-vectorizer breaks even.
func VectorHint() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 8
	case cpu.X86.HasAVX2, cpu.ARM64.HasSVE:
		return 4
	default:
		return 2
	}
}
