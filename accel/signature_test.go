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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/x448/float16"
)

func TestSignatureOf(t *testing.T) {
	f64vec := NewFloat64([]float64{1, 2, 3})
	f32vec := NewFloat32([]float32{1, 2, 3})
	f16vec := NewFloat16([]float16.Float16{float16.Fromfloat32(1)})
	i32vec := NewInt32([]int32{1, 2})
	mat := NewFloat64(make([]float64, 6), 2, 3)
	strided := NewFloat64([]float64{1, 2, 3, 4, 5, 6}).View([]int{3}, []int{2})

	tests := []struct {
		name      string
		args      []Value
		want      string
		supported bool
	}{
		{"empty", nil, "()", true},
		{"f64 vector", []Value{BufferValue(f64vec)}, "f64x1c", true},
		{"f32 vector", []Value{BufferValue(f32vec)}, "f32x1c", true},
		{"f16 vector", []Value{BufferValue(f16vec)}, "f16x1c", true},
		{"i32 vector", []Value{BufferValue(i32vec)}, "i32x1c", true},
		{"matrix", []Value{BufferValue(mat)}, "f64x2c", true},
		{"strided", []Value{BufferValue(strided)}, "f64x1s", true},
		{"scalar", []Value{ScalarValue(2)}, "f64x0c", true},
		{"vector and scalar", []Value{BufferValue(f64vec), ScalarValue(2)}, "f64x1c|f64x0c", true},
		{"zero value", []Value{{}}, "unsupportedx0c", false},
		{"nil buffer", []Value{BufferValue(nil)}, "unsupportedx0c", false},
		{"rank-0 buffer", []Value{BufferValue(NewBuffer(KindFloat64))}, "unsupportedx0c", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := SignatureOf(tt.args...)
			if got := sig.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := sig.Supported(); got != tt.supported {
				t.Errorf("Supported() = %v, want %v", got, tt.supported)
			}
		})
	}
}

func TestSignatureLengthInsensitive(t *testing.T) {
	short := SignatureOf(BufferValue(NewFloat64(make([]float64, 3))), ScalarValue(2))
	long := SignatureOf(BufferValue(NewFloat64(make([]float64, 100000))), ScalarValue(7))
	if short != long {
		t.Fatalf("signatures differ across buffer lengths: %s vs %s", short, long)
	}
}

// A rank-0 buffer and a scalar must never share a signature: a variant
// built for a scalar position reads the scalar payload, which is zero
// for a buffer Value.
func TestSignatureRankZeroBufferIsNotScalar(t *testing.T) {
	scalar := SignatureOf(ScalarValue(5))
	rank0 := SignatureOf(BufferValue(NewBuffer(KindFloat64)))
	if scalar == rank0 {
		t.Fatal("rank-0 buffer extracted to the scalar signature")
	}
}

func TestSignatureDistinguishes(t *testing.T) {
	f64 := SignatureOf(BufferValue(NewFloat64(make([]float64, 4))))
	f32 := SignatureOf(BufferValue(NewFloat32(make([]float32, 4))))
	if f64 == f32 {
		t.Error("f64 and f32 buffers must not share a signature")
	}

	base := NewFloat64(make([]float64, 8))
	contig := SignatureOf(BufferValue(base))
	strided := SignatureOf(BufferValue(base.View([]int{4}, []int{2})))
	if contig == strided {
		t.Error("contiguous and strided buffers must not share a signature")
	}
}

func TestSignatureTooManyArgs(t *testing.T) {
	args := make([]Value, MaxArgs+1)
	for i := range args {
		args[i] = ScalarValue(float64(i))
	}
	if SignatureOf(args...).Supported() {
		t.Errorf("calls with more than %d arguments must be unsupported", MaxArgs)
	}
}

func TestSigMatchesExtraction(t *testing.T) {
	want := SignatureOf(BufferValue(NewFloat64(make([]float64, 5))), ScalarValue(1))
	got := Sig(Vec(KindFloat64), ScalarArg())
	if got != want {
		t.Fatalf("Sig() = %s, extraction = %s", got, want)
	}
	if diff := cmp.Diff(want.At(0), got.At(0)); diff != "" {
		t.Errorf("first ArgType mismatch (-want +got):\n%s", diff)
	}
}
