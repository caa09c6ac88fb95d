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

package vecops

import (
	"github.com/ajroetker/go-accelerate/accel"
)

// Specialized variant constructors. Each returns a closure monomorphized
// for one element type and layout; the dispatcher only routes calls whose
// extracted signature matches, so the closures index typed storage
// directly without re-checking kinds.

// data returns b's storage as []T. Valid only after the signature check
// has fixed b's kind to T.
func data[T accel.Float](b *accel.Buffer) []T {
	var z T
	if _, is32 := any(z).(float32); is32 {
		return any(b.Float32s()).([]T)
	}
	return any(b.Float64s()).([]T)
}

func scaleContig[T accel.Float]() accel.Fn {
	return func(args []accel.Value) (accel.Value, error) {
		src := args[0].Buffer()
		factor := T(args[1].Scalar())
		out := accel.NewBuffer(src.Kind(), src.Shape()...)
		s, d := data[T](src), data[T](out)
		n := src.Len()
		for i := 0; i < n; i++ {
			d[i] = s[i] * factor
		}
		return accel.BufferValue(out), nil
	}
}

func scaleStrided[T accel.Float]() accel.Fn {
	return func(args []accel.Value) (accel.Value, error) {
		src := args[0].Buffer()
		factor := T(args[1].Scalar())
		out := accel.NewBuffer(src.Kind(), src.Shape()...)
		s, d := data[T](src), data[T](out)
		n, st := src.Len(), src.Stride(0)
		for i, off := 0, 0; i < n; i, off = i+1, off+st {
			d[i] = s[off] * factor
		}
		return accel.BufferValue(out), nil
	}
}

func muladdContig[T accel.Float]() accel.Fn {
	return func(args []accel.Value) (accel.Value, error) {
		x, y, z, err := threeBuffers("muladd", args)
		if err != nil {
			return accel.Value{}, err
		}
		out := accel.NewBuffer(x.Kind(), x.Shape()...)
		xs, ys, zs, d := data[T](x), data[T](y), data[T](z), data[T](out)
		n := x.Len()
		for i := 0; i < n; i++ {
			d[i] = xs[i]*ys[i] + zs[i]
		}
		return accel.BufferValue(out), nil
	}
}

func dotContig[T accel.Float]() accel.Fn {
	unroll := accel.VectorHint()
	return func(args []accel.Value) (accel.Value, error) {
		a, b := args[0].Buffer(), args[1].Buffer()
		if err := sameShape("dot", a, b); err != nil {
			return accel.Value{}, err
		}
		as, bs := data[T](a), data[T](b)
		n := a.Len()
		acc := make([]T, unroll)
		i := 0
		for ; i+unroll <= n; i += unroll {
			for j := 0; j < unroll; j++ {
				acc[j] += as[i+j] * bs[i+j]
			}
		}
		var sum T
		for ; i < n; i++ {
			sum += as[i] * bs[i]
		}
		for _, v := range acc {
			sum += v
		}
		return accel.ScalarValue(float64(sum)), nil
	}
}
