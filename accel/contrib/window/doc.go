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

// Package window registers sliding-window aggregation kernels for
// signal-processing workloads.
//
// Each kernel slides a windowSize-element window across a 1-D data
// buffer, shifting it shiftSize elements to the right per chunk. The
// chunk count is capped so the last chunk is still full-length; inputs
// shorter than the window produce an empty result. Results are always
// float64 buffers, one element per chunk, whatever the input kind.
//
// Kernels (argument forms with and without a window/weight buffer):
//   - "sliding_rms" (data, windowSize, shiftSize)
//     "sliding_rms" (data, window, windowSize, shiftSize)
//     RMS per chunk; the windowed form multiplies each chunk by the
//     window function before squaring. Window functions such as
//     gonum.org/v1/gonum/dsp/window.Blackman reduce the artifacts of
//     shifting the window edge through the data.
//   - "sliding_avg" (data[, weights], windowSize, shiftSize)
//     Mean per chunk; the weighted form computes Σ(d·w)/Σw.
//   - "sliding_sum" (data[, window], windowSize, shiftSize)
//     Integral per chunk; the windowed form computes Σ(d·w).
//
// The windowed forms take roughly twice as long as the plain ones.
//
// Specialized variants exist for float32 and float64 contiguous data;
// they widen every element to float64 before accumulating, so compiled
// and fallback results are bit-identical for all supported inputs.
//
// Offsets reports the chunk start offsets, so callers can map each
// result element back to the data range that produced it.
package window
