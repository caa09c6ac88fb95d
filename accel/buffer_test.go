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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/x448/float16"
)

func TestBufferAt(t *testing.T) {
	b := NewFloat64([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	if got := b.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
	if got := b.AtFlat(4); got != 5 {
		t.Errorf("AtFlat(4) = %v, want 5", got)
	}
	b.SetAt(42, 0, 1)
	if got := b.At(0, 1); got != 42 {
		t.Errorf("At(0,1) after SetAt = %v, want 42", got)
	}
}

func TestBufferView(t *testing.T) {
	base := NewFloat64([]float64{0, 1, 2, 3, 4, 5, 6, 7})
	evens := base.View([]int{4}, []int{2})

	if evens.Layout() != LayoutStrided {
		t.Fatalf("Layout() = %v, want LayoutStrided", evens.Layout())
	}
	if base.Layout() != LayoutContiguous {
		t.Fatalf("base Layout() = %v, want LayoutContiguous", base.Layout())
	}
	if diff := cmp.Diff([]float64{0, 2, 4, 6}, evens.Values()); diff != "" {
		t.Errorf("evens.Values() mismatch (-want +got):\n%s", diff)
	}

	// Views share storage.
	base.SetAt(99, 2)
	if got := evens.At(1); got != 99 {
		t.Errorf("view did not observe base write: got %v, want 99", got)
	}
}

func TestBufferFloat16(t *testing.T) {
	b := NewBuffer(KindFloat16, 3)
	b.SetFlat(1.5, 0)
	b.SetFlat(-2.25, 1)
	b.SetFlat(0.1, 2)

	if got := b.AtFlat(0); got != 1.5 {
		t.Errorf("AtFlat(0) = %v, want 1.5", got)
	}
	if got := b.AtFlat(1); got != -2.25 {
		t.Errorf("AtFlat(1) = %v, want -2.25", got)
	}
	// 0.1 is not representable in half precision; round-trip through the
	// storage format must match x448/float16's own rounding.
	want := float64(float16.Fromfloat32(0.1).Float32())
	if got := b.AtFlat(2); got != want {
		t.Errorf("AtFlat(2) = %v, want %v", got, want)
	}
	if math.Abs(b.AtFlat(2)-0.1) > 1e-3 {
		t.Errorf("f16 round-trip error too large: %v", b.AtFlat(2))
	}
}

func TestBufferKinds(t *testing.T) {
	tests := []struct {
		kind ElemKind
		size int
	}{
		{KindFloat16, 2},
		{KindFloat32, 4},
		{KindFloat64, 8},
		{KindInt32, 4},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			b := NewBuffer(tt.kind, 4)
			if b.Kind() != tt.kind {
				t.Errorf("Kind() = %v", b.Kind())
			}
			if tt.kind.Size() != tt.size {
				t.Errorf("Size() = %d, want %d", tt.kind.Size(), tt.size)
			}
			b.SetFlat(3, 2)
			if got := b.AtFlat(2); got != 3 {
				t.Errorf("round-trip = %v, want 3", got)
			}
		})
	}
}
