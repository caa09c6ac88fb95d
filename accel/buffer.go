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
	"github.com/x448/float16"
)

// ElemKind identifies the element type of a buffer or scalar. It is one
// axis of a TypeSignature; two buffers with different kinds never share a
// specialized variant.
type ElemKind uint8

const (
	KindUnsupported ElemKind = iota
	KindFloat16
	KindFloat32
	KindFloat64
	KindInt32
)

func (k ElemKind) String() string {
	switch k {
	case KindFloat16:
		return "f16"
	case KindFloat32:
		return "f32"
	case KindFloat64:
		return "f64"
	case KindInt32:
		return "i32"
	}
	return "unsupported"
}

// Size returns the element size in bytes, or 0 for KindUnsupported.
func (k ElemKind) Size() int {
	switch k {
	case KindFloat16:
		return 2
	case KindFloat32, KindInt32:
		return 4
	case KindFloat64:
		return 8
	}
	return 0
}

// Buffer is a homogeneous numeric array with an explicit shape and
// per-dimension element strides. Exactly one of the typed storage slices
// is populated, selected by kind.
//
// Buffers are plain data: the dispatch machinery never mutates them, and
// kernels may only write to buffers they allocated themselves or were
// handed as outputs. A strided Buffer is a view; it shares storage with
// the buffer it was derived from.
type Buffer struct {
	kind    ElemKind
	shape   []int
	strides []int

	f16 []float16.Float16
	f32 []float32
	f64 []float64
	i32 []int32
}

// NewBuffer allocates a zeroed, contiguous buffer of the given kind and
// shape. It panics if kind is KindUnsupported, matching the behavior of an
// out-of-range slice index: it is a programming error, not an input error.
func NewBuffer(kind ElemKind, shape ...int) *Buffer {
	n := numElems(shape)
	b := &Buffer{kind: kind, shape: append([]int(nil), shape...), strides: contiguousStrides(shape)}
	switch kind {
	case KindFloat16:
		b.f16 = make([]float16.Float16, n)
	case KindFloat32:
		b.f32 = make([]float32, n)
	case KindFloat64:
		b.f64 = make([]float64, n)
	case KindInt32:
		b.i32 = make([]int32, n)
	default:
		panic("accel: NewBuffer with unsupported element kind")
	}
	return b
}

// NewFloat64 wraps data as a contiguous float64 buffer. With no shape the
// buffer is 1-D of length len(data).
func NewFloat64(data []float64, shape ...int) *Buffer {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	return &Buffer{kind: KindFloat64, f64: data, shape: append([]int(nil), shape...), strides: contiguousStrides(shape)}
}

// NewFloat32 wraps data as a contiguous float32 buffer.
func NewFloat32(data []float32, shape ...int) *Buffer {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	return &Buffer{kind: KindFloat32, f32: data, shape: append([]int(nil), shape...), strides: contiguousStrides(shape)}
}

// NewFloat16 wraps data as a contiguous IEEE 754 half-precision buffer.
func NewFloat16(data []float16.Float16, shape ...int) *Buffer {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	return &Buffer{kind: KindFloat16, f16: data, shape: append([]int(nil), shape...), strides: contiguousStrides(shape)}
}

// NewInt32 wraps data as a contiguous int32 buffer.
func NewInt32(data []int32, shape ...int) *Buffer {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	return &Buffer{kind: KindInt32, i32: data, shape: append([]int(nil), shape...), strides: contiguousStrides(shape)}
}

// View derives a buffer sharing b's storage with a new shape and explicit
// element strides. This is how strided (non-contiguous) buffers are made:
//
//	evens := b.View([]int{b.Len() / 2}, []int{2})
func (b *Buffer) View(shape, strides []int) *Buffer {
	nb := *b
	nb.shape = append([]int(nil), shape...)
	nb.strides = append([]int(nil), strides...)
	return &nb
}

// Kind returns the element kind.
func (b *Buffer) Kind() ElemKind { return b.kind }

// Rank returns the number of dimensions.
func (b *Buffer) Rank() int { return len(b.shape) }

// Shape returns the buffer's dimensions. The caller must not modify it.
func (b *Buffer) Shape() []int { return b.shape }

// Stride returns the element stride of dimension d.
func (b *Buffer) Stride(d int) int { return b.strides[d] }

// Len returns the logical element count, the product of the shape.
func (b *Buffer) Len() int { return numElems(b.shape) }

// Layout classifies the buffer's memory layout: LayoutContiguous when the
// strides are the canonical row-major strides for the shape, LayoutStrided
// otherwise. Variants specialized for contiguous buffers index storage
// directly; strided buffers need the stride arithmetic baked in.
func (b *Buffer) Layout() Layout {
	want := contiguousStrides(b.shape)
	for d := range want {
		if b.strides[d] != want[d] {
			return LayoutStrided
		}
	}
	return LayoutContiguous
}

// At reads the element at the given multi-dimensional index, widened to
// float64. This is the abstract element access the fallback interpreter
// runs on; specialized variants bypass it entirely.
func (b *Buffer) At(ix ...int) float64 {
	off := b.offset(ix)
	switch b.kind {
	case KindFloat16:
		return float64(b.f16[off].Float32())
	case KindFloat32:
		return float64(b.f32[off])
	case KindFloat64:
		return b.f64[off]
	case KindInt32:
		return float64(b.i32[off])
	}
	panic("accel: At on unsupported element kind")
}

// SetAt stores v at the given index, narrowing to the buffer's kind.
func (b *Buffer) SetAt(v float64, ix ...int) {
	off := b.offset(ix)
	switch b.kind {
	case KindFloat16:
		b.f16[off] = float16.Fromfloat32(float32(v))
	case KindFloat32:
		b.f32[off] = float32(v)
	case KindFloat64:
		b.f64[off] = v
	case KindInt32:
		b.i32[off] = int32(v)
	default:
		panic("accel: SetAt on unsupported element kind")
	}
}

// AtFlat reads logical element i in row-major order, regardless of the
// buffer's strides.
func (b *Buffer) AtFlat(i int) float64 {
	if len(b.shape) == 1 {
		return b.At(i)
	}
	return b.At(b.unflatten(i)...)
}

// SetFlat stores v at logical element i in row-major order.
func (b *Buffer) SetFlat(v float64, i int) {
	if len(b.shape) == 1 {
		b.SetAt(v, i)
		return
	}
	b.SetAt(v, b.unflatten(i)...)
}

// Float64s returns the underlying float64 storage, or nil if the buffer
// holds another kind. Specialized variants use the typed accessors after
// the signature check has fixed the kind.
func (b *Buffer) Float64s() []float64 { return b.f64 }

// Float32s returns the underlying float32 storage, or nil.
func (b *Buffer) Float32s() []float32 { return b.f32 }

// Float16s returns the underlying half-precision storage, or nil.
func (b *Buffer) Float16s() []float16.Float16 { return b.f16 }

// Int32s returns the underlying int32 storage, or nil.
func (b *Buffer) Int32s() []int32 { return b.i32 }

// Values materializes the logical elements in row-major order, widened to
// float64. Intended for tests and diagnostics, not hot paths.
func (b *Buffer) Values() []float64 {
	out := make([]float64, b.Len())
	for i := range out {
		out[i] = b.AtFlat(i)
	}
	return out
}

func (b *Buffer) offset(ix []int) int {
	if len(ix) != len(b.shape) {
		panic("accel: index rank mismatch")
	}
	off := 0
	for d, i := range ix {
		off += i * b.strides[d]
	}
	return off
}

func (b *Buffer) unflatten(i int) []int {
	ix := make([]int, len(b.shape))
	for d := len(b.shape) - 1; d >= 0; d-- {
		ix[d] = i % b.shape[d]
		i /= b.shape[d]
	}
	return ix
}

func numElems(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

func contiguousStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = acc
		acc *= shape[d]
	}
	return strides
}

// Value is a single kernel argument or result: either a Buffer or a
// float64 scalar. The zero Value has KindUnsupported and routes any call
// containing it to the fallback-or-error path.
type Value struct {
	buf    *Buffer
	scalar float64
	kind   ElemKind
}

// BufferValue wraps a buffer as an argument.
func BufferValue(b *Buffer) Value {
	if b == nil {
		return Value{}
	}
	return Value{buf: b, kind: b.kind}
}

// ScalarValue wraps a float64 scalar as an argument. Scalars always have
// kind KindFloat64 and rank 0.
func ScalarValue(v float64) Value {
	return Value{scalar: v, kind: KindFloat64}
}

// IsScalar reports whether the value is a scalar rather than a buffer.
func (v Value) IsScalar() bool { return v.buf == nil }

// Buffer returns the wrapped buffer, or nil for scalars.
func (v Value) Buffer() *Buffer { return v.buf }

// Scalar returns the scalar payload. It is meaningful only when IsScalar
// reports true.
func (v Value) Scalar() float64 { return v.scalar }

// Kind returns the element kind of the buffer, or KindFloat64 for scalars.
func (v Value) Kind() ElemKind { return v.kind }
