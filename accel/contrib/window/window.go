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

package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/ajroetker/go-accelerate/accel"
)

// Kernel-domain errors, reported identically by compiled variants and
// reference bodies.
var (
	ErrZeroWindowSize = errors.New("window: window size must not be zero")
	ErrZeroShiftSize  = errors.New("window: shift size must not be zero")
)

// Kernels returns the sliding-window kernel set, ready to register.
func Kernels() []*accel.Kernel {
	return []*accel.Kernel{
		slidingKernel("sliding_rms", rmsChunks),
		slidingKernel("sliding_avg", avgChunks),
		slidingKernel("sliding_sum", sumChunks),
	}
}

// Register registers every sliding-window kernel into r.
func Register(r *accel.Registry) error {
	for _, k := range Kernels() {
		if err := r.Register(k); err != nil {
			return err
		}
	}
	return nil
}

// Offsets returns the chunk start offsets for a data length of n:
// chunk c covers data[offsets[c] : offsets[c]+windowSize].
func Offsets(n, windowSize, shiftSize int) ([]int, error) {
	chunks, err := numChunks(n, windowSize, shiftSize)
	if err != nil {
		return nil, err
	}
	offsets := make([]int, chunks)
	for c := range offsets {
		offsets[c] = c * shiftSize
	}
	return offsets, nil
}

// numChunks caps the chunk count so the last chunk is full-length.
func numChunks(n, windowSize, shiftSize int) (int, error) {
	if windowSize <= 0 {
		return 0, ErrZeroWindowSize
	}
	if shiftSize <= 0 {
		return 0, ErrZeroShiftSize
	}
	span := n - (windowSize - 1)
	if span <= 0 {
		return 0, nil
	}
	return (span + shiftSize - 1) / shiftSize, nil
}

// aggFunc fills out[c] for every chunk given the widened data and the
// squared-or-plain window weights (nil for the unwindowed forms).
type aggFunc func(data, win []float64, out []float64, size, shift int)

// slidingKernel assembles one sliding-window kernel around an aggregator.
// The reference body and every specialized variant funnel through the
// same argument validation and the same aggregator, so the two paths
// agree bit-for-bit; variants only differ in how they widen the data out
// of its storage.
func slidingKernel(name string, agg aggFunc) *accel.Kernel {
	return &accel.Kernel{
		Name: name,
		Ref: func(args []accel.Value) (accel.Value, error) {
			data, win, size, shift, err := slidingArgs(name, args)
			if err != nil {
				return accel.Value{}, err
			}
			widened := make([]float64, data.Len())
			for i := range widened {
				widened[i] = data.AtFlat(i)
			}
			var weights []float64
			if win != nil {
				weights = make([]float64, win.Len())
				for i := range weights {
					weights[i] = win.AtFlat(i)
				}
			}
			return aggregate(agg, widened, weights, size, shift)
		},
		Build: func(sig accel.TypeSignature) (accel.Fn, error) {
			if !buildable(sig) {
				return nil, accel.ErrUnsupported
			}
			switch sig.At(0).Kind {
			case accel.KindFloat64:
				return slidingVariant[float64](name, agg), nil
			case accel.KindFloat32:
				return slidingVariant[float32](name, agg), nil
			}
			return nil, accel.ErrUnsupported
		},
	}
}

// buildable accepts (vec, scalar, scalar) and (vec, vec, scalar, scalar)
// with float32/float64 contiguous rank-1 buffers of one kind.
func buildable(sig accel.TypeSignature) bool {
	n := sig.NumArgs()
	if n != 3 && n != 4 {
		return false
	}
	kind := sig.At(0).Kind
	if kind != accel.KindFloat64 && kind != accel.KindFloat32 {
		return false
	}
	bufs := 1
	if n == 4 {
		bufs = 2
	}
	for i := 0; i < bufs; i++ {
		a := sig.At(i)
		if a.Kind != kind || a.Rank != 1 || a.Layout != accel.LayoutContiguous {
			return false
		}
	}
	for i := bufs; i < n; i++ {
		if sig.At(i).Rank != 0 {
			return false
		}
	}
	return true
}

func slidingVariant[T accel.Float](name string, agg aggFunc) accel.Fn {
	return func(args []accel.Value) (accel.Value, error) {
		data, win, size, shift, err := slidingArgs(name, args)
		if err != nil {
			return accel.Value{}, err
		}
		widened := widen[T](data)
		var weights []float64
		if win != nil {
			weights = widen[T](win)
		}
		return aggregate(agg, widened, weights, size, shift)
	}
}

func aggregate(agg aggFunc, data, weights []float64, size, shift int) (accel.Value, error) {
	chunks, err := numChunks(len(data), size, shift)
	if err != nil {
		return accel.Value{}, err
	}
	out := accel.NewBuffer(accel.KindFloat64, chunks)
	if chunks > 0 {
		agg(data, weights, out.Float64s(), size, shift)
	}
	return accel.BufferValue(out), nil
}

// widen copies contiguous storage into a float64 slice.
func widen[T accel.Float](b *accel.Buffer) []float64 {
	var z T
	if _, is64 := any(z).(float64); is64 {
		src := b.Float64s()
		out := make([]float64, b.Len())
		copy(out, src)
		return out
	}
	src := b.Float32s()
	out := make([]float64, b.Len())
	for i := range out {
		out[i] = float64(src[i])
	}
	return out
}

// slidingArgs validates both argument forms. Scalar window/shift sizes
// are truncated to int; a window buffer must match windowSize exactly.
func slidingArgs(kernel string, args []accel.Value) (data, win *accel.Buffer, size, shift int, err error) {
	var sizeArg, shiftArg accel.Value
	switch len(args) {
	case 3:
		sizeArg, shiftArg = args[1], args[2]
	case 4:
		if args[1].IsScalar() {
			return nil, nil, 0, 0, fmt.Errorf("%s: second argument must be a window buffer, got %s", kernel, accel.SignatureOf(args...))
		}
		win = args[1].Buffer()
		sizeArg, shiftArg = args[2], args[3]
	default:
		return nil, nil, 0, 0, fmt.Errorf("%s: want (data[, window], windowSize, shiftSize), got %s", kernel, accel.SignatureOf(args...))
	}
	if args[0].IsScalar() {
		return nil, nil, 0, 0, fmt.Errorf("%s: first argument must be a data buffer", kernel)
	}
	data = args[0].Buffer()
	if data.Rank() != 1 || (win != nil && win.Rank() != 1) {
		return nil, nil, 0, 0, fmt.Errorf("%s: buffers must be 1-D", kernel)
	}
	if !sizeArg.IsScalar() || !shiftArg.IsScalar() {
		return nil, nil, 0, 0, fmt.Errorf("%s: windowSize and shiftSize must be scalars", kernel)
	}
	size, shift = int(sizeArg.Scalar()), int(shiftArg.Scalar())
	if win != nil && win.Len() != size {
		return nil, nil, 0, 0, fmt.Errorf("%s: %w: window length %d vs window size %d", kernel, accel.ErrShapeMismatch, win.Len(), size)
	}
	return data, win, size, shift, nil
}

// rmsChunks squares the data once up front instead of once per chunk,
// and folds the window in as window² on the squared data:
// (d·w)² = d²·w².
func rmsChunks(data, win []float64, out []float64, size, shift int) {
	square := make([]float64, len(data))
	for i, v := range data {
		square[i] = v * v
	}
	if win != nil {
		winSquare := make([]float64, len(win))
		for i, w := range win {
			winSquare[i] = w * w
		}
		for c := range out {
			ofs := c * shift
			var sum float64
			for i := 0; i < size; i++ {
				sum += square[ofs+i] * winSquare[i]
			}
			out[c] = math.Sqrt(sum / float64(size))
		}
		return
	}
	for c := range out {
		ofs := c * shift
		var sum float64
		for i := 0; i < size; i++ {
			sum += square[ofs+i]
		}
		out[c] = math.Sqrt(sum / float64(size))
	}
}

// avgChunks computes the chunk mean, or the weighted mean Σ(d·w)/Σw.
func avgChunks(data, win []float64, out []float64, size, shift int) {
	if win != nil {
		var wsum float64
		for _, w := range win {
			wsum += w
		}
		for c := range out {
			ofs := c * shift
			var sum float64
			for i := 0; i < size; i++ {
				sum += data[ofs+i] * win[i]
			}
			out[c] = sum / wsum
		}
		return
	}
	for c := range out {
		ofs := c * shift
		var sum float64
		for i := 0; i < size; i++ {
			sum += data[ofs+i]
		}
		out[c] = sum / float64(size)
	}
}

// sumChunks computes the chunk integral, windowed as Σ(d·w).
func sumChunks(data, win []float64, out []float64, size, shift int) {
	for c := range out {
		ofs := c * shift
		var sum float64
		for i := 0; i < size; i++ {
			v := data[ofs+i]
			if win != nil {
				v *= win[i]
			}
			sum += v
		}
		out[c] = sum
	}
}
