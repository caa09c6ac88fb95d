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
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	gowindow "gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/ajroetker/go-accelerate/accel"
)

func newDispatcher(t *testing.T, cfg accel.Config) *accel.Dispatcher {
	t.Helper()
	reg := accel.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatal(err)
	}
	return accel.New(reg, cfg)
}

func invoke(t *testing.T, d *accel.Dispatcher, kernel string, args ...accel.Value) []float64 {
	t.Helper()
	out, err := d.Invoke(context.Background(), kernel, args...)
	if err != nil {
		t.Fatal(err)
	}
	return out.Buffer().Values()
}

func TestOffsets(t *testing.T) {
	tests := []struct {
		n, size, shift int
		want           []int
	}{
		{0, 500, 1, []int{}},
		{0, 500, 2, []int{}},
		{3, 3, 2, []int{0}},
		{5, 3, 1, []int{0, 1, 2}},
		{5, 3, 2, []int{0, 2}},
		{6, 3, 3, []int{0, 3}},
		{6, 1, 1, []int{0, 1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		got, err := Offsets(tt.n, tt.size, tt.shift)
		if err != nil {
			t.Fatalf("Offsets(%d,%d,%d): %v", tt.n, tt.size, tt.shift, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Offsets(%d,%d,%d) mismatch (-want +got):\n%s", tt.n, tt.size, tt.shift, diff)
		}
	}
}

func TestOffsetsZeroSizes(t *testing.T) {
	if _, err := Offsets(10, 0, 1); err != ErrZeroWindowSize {
		t.Errorf("zero window size: got %v", err)
	}
	if _, err := Offsets(10, 5, 0); err != ErrZeroShiftSize {
		t.Errorf("zero shift size: got %v", err)
	}
}

func TestSlidingRMS(t *testing.T) {
	d := newDispatcher(t, accel.Config{})

	// Input shorter than the window produces no chunks.
	got := invoke(t, d, "sliding_rms",
		accel.BufferValue(accel.NewFloat64([]float64{1})),
		accel.ScalarValue(500), accel.ScalarValue(1))
	if len(got) != 0 {
		t.Fatalf("short input: got %v, want empty", got)
	}

	// Input length equal to the window produces exactly one chunk.
	data := []float64{1, 2, 3}
	got = invoke(t, d, "sliding_rms",
		accel.BufferValue(accel.NewFloat64(data)),
		accel.ScalarValue(3), accel.ScalarValue(1))
	want := math.Sqrt((1.0 + 4.0 + 9.0) / 3.0)
	if len(got) != 1 || math.Abs(got[0]-want) > 1e-15 {
		t.Fatalf("got %v, want [%v]", got, want)
	}
}

func TestSlidingAvg(t *testing.T) {
	d := newDispatcher(t, accel.Config{})
	data := []float64{1, 2, 3, 4, 5}
	got := invoke(t, d, "sliding_avg",
		accel.BufferValue(accel.NewFloat64(data)),
		accel.ScalarValue(3), accel.ScalarValue(1))
	if diff := cmp.Diff([]float64{2, 3, 4}, got); diff != "" {
		t.Errorf("sliding_avg mismatch (-want +got):\n%s", diff)
	}

	// Uniform weights reduce to the plain average.
	weights := accel.NewFloat64([]float64{1, 1, 1})
	weighted := invoke(t, d, "sliding_avg",
		accel.BufferValue(accel.NewFloat64(data)), accel.BufferValue(weights),
		accel.ScalarValue(3), accel.ScalarValue(1))
	if diff := cmp.Diff([]float64{2, 3, 4}, weighted); diff != "" {
		t.Errorf("uniform weights mismatch (-want +got):\n%s", diff)
	}
}

func TestSlidingSum(t *testing.T) {
	d := newDispatcher(t, accel.Config{})
	data := []float64{1, 2, 3, 4, 5, 6}
	got := invoke(t, d, "sliding_sum",
		accel.BufferValue(accel.NewFloat64(data)),
		accel.ScalarValue(3), accel.ScalarValue(3))

	// Cross-check against gonum's summation.
	want := []float64{floats.Sum(data[0:3]), floats.Sum(data[3:6])}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sliding_sum mismatch (-want +got):\n%s", diff)
	}
}

// TestWindowedRMSWithBlackman uses a real window function the way the
// kernels are meant to be used, and checks the w²-folding optimization
// against a naive per-chunk evaluation.
func TestWindowedRMSWithBlackman(t *testing.T) {
	const (
		n     = 4096
		size  = 500
		shift = 25
	)
	rng := rand.New(rand.NewSource(7))
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(float64(i)/30) + 0.1*rng.NormFloat64()
	}
	win := gowindow.Blackman(onesSlice(size))

	d := newDispatcher(t, accel.Config{})
	got := invoke(t, d, "sliding_rms",
		accel.BufferValue(accel.NewFloat64(data)), accel.BufferValue(accel.NewFloat64(win)),
		accel.ScalarValue(size), accel.ScalarValue(shift))

	offsets, err := Offsets(n, size, shift)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(offsets) {
		t.Fatalf("got %d chunks, want %d", len(got), len(offsets))
	}
	for c, ofs := range offsets {
		var sum float64
		for i := 0; i < size; i++ {
			v := data[ofs+i] * win[i]
			sum += v * v
		}
		want := math.Sqrt(sum / size)
		if math.Abs(got[c]-want) > 1e-12 {
			t.Fatalf("chunk %d: got %v, want %v", c, got[c], want)
		}
	}
}

// TestCompiledMatchesFallback pins the equivalence contract: the window
// variants widen to float64 exactly as the interpreter does, so the two
// paths are bit-identical.
func TestCompiledMatchesFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	data64 := make([]float64, 777)
	for i := range data64 {
		data64[i] = rng.NormFloat64()
	}
	data32 := make([]float32, len(data64))
	for i, v := range data64 {
		data32[i] = float32(v)
	}
	win := gowindow.Hann(onesSlice(64))

	compiled := newDispatcher(t, accel.Config{})
	interp := newDispatcher(t, accel.Config{DisableCompilation: true})

	argSets := [][]accel.Value{
		{accel.BufferValue(accel.NewFloat64(data64)), accel.ScalarValue(64), accel.ScalarValue(7)},
		{accel.BufferValue(accel.NewFloat32(data32)), accel.ScalarValue(64), accel.ScalarValue(7)},
		{accel.BufferValue(accel.NewFloat64(data64)), accel.BufferValue(accel.NewFloat64(win)),
			accel.ScalarValue(64), accel.ScalarValue(7)},
	}
	for _, kernel := range []string{"sliding_rms", "sliding_avg", "sliding_sum"} {
		for _, args := range argSets {
			want := invoke(t, interp, kernel, args...)
			got := invoke(t, compiled, kernel, args...)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s: compiled diverges from fallback (-want +got):\n%s", kernel, diff)
			}
		}
	}
	if interp.Stats().Builds != 0 {
		t.Error("interpreter dispatcher must never compile")
	}
	if compiled.Stats().Builds == 0 {
		t.Error("compiled dispatcher built nothing")
	}
}

func TestZeroSizesAreKernelErrors(t *testing.T) {
	for _, cfg := range []accel.Config{{}, {DisableCompilation: true}} {
		d := newDispatcher(t, cfg)
		_, err := d.Invoke(context.Background(), "sliding_rms",
			accel.BufferValue(accel.NewFloat64([]float64{1, 2, 3})),
			accel.ScalarValue(0), accel.ScalarValue(1))
		if err != ErrZeroWindowSize {
			t.Errorf("DisableCompilation=%v: got %v, want ErrZeroWindowSize", cfg.DisableCompilation, err)
		}
		_, err = d.Invoke(context.Background(), "sliding_rms",
			accel.BufferValue(accel.NewFloat64([]float64{1, 2, 3})),
			accel.ScalarValue(3), accel.ScalarValue(0))
		if err != ErrZeroShiftSize {
			t.Errorf("DisableCompilation=%v: got %v, want ErrZeroShiftSize", cfg.DisableCompilation, err)
		}
	}
}

func TestWindowLengthMismatch(t *testing.T) {
	d := newDispatcher(t, accel.Config{})
	_, err := d.Invoke(context.Background(), "sliding_sum",
		accel.BufferValue(accel.NewFloat64(make([]float64, 10))),
		accel.BufferValue(accel.NewFloat64(make([]float64, 4))),
		accel.ScalarValue(5), accel.ScalarValue(1))
	if err == nil {
		t.Fatal("want shape mismatch for window length != window size")
	}
}

func onesSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
