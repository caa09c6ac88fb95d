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
	"fmt"
	"slices"

	"github.com/ajroetker/go-accelerate/accel"
)

// Kernels returns the vecops kernel set, ready to register.
func Kernels() []*accel.Kernel {
	return []*accel.Kernel{scaleKernel(), muladdKernel(), dotKernel()}
}

// Register registers every vecops kernel into r.
func Register(r *accel.Registry) error {
	for _, k := range Kernels() {
		if err := r.Register(k); err != nil {
			return err
		}
	}
	return nil
}

func scaleKernel() *accel.Kernel {
	return &accel.Kernel{
		Name: "scale",
		Ref:  refScale,
		Build: func(sig accel.TypeSignature) (accel.Fn, error) {
			if sig.NumArgs() != 2 || sig.At(0).Rank != 1 || sig.At(1).Rank != 0 {
				return nil, accel.ErrUnsupported
			}
			switch a := sig.At(0); {
			case a.Kind == accel.KindFloat64 && a.Layout == accel.LayoutContiguous:
				return scaleContig[float64](), nil
			case a.Kind == accel.KindFloat64:
				return scaleStrided[float64](), nil
			case a.Kind == accel.KindFloat32 && a.Layout == accel.LayoutContiguous:
				return scaleContig[float32](), nil
			case a.Kind == accel.KindFloat32:
				return scaleStrided[float32](), nil
			}
			return nil, accel.ErrUnsupported
		},
	}
}

// refScale multiplies a buffer of any supported kind, rank and layout by
// a scalar. The result has the input's kind and shape.
func refScale(args []accel.Value) (accel.Value, error) {
	if len(args) != 2 || args[0].IsScalar() || !args[1].IsScalar() {
		return accel.Value{}, fmt.Errorf("scale: want (buffer, scalar), got %s", accel.SignatureOf(args...))
	}
	src := args[0].Buffer()
	factor := args[1].Scalar()
	out := accel.NewBuffer(src.Kind(), src.Shape()...)
	for i, n := 0, src.Len(); i < n; i++ {
		out.SetFlat(src.AtFlat(i)*factor, i)
	}
	return accel.BufferValue(out), nil
}

func muladdKernel() *accel.Kernel {
	return &accel.Kernel{
		Name: "muladd",
		Ref:  refMulAdd,
		Build: func(sig accel.TypeSignature) (accel.Fn, error) {
			if sig.NumArgs() != 3 {
				return nil, accel.ErrUnsupported
			}
			kind := sig.At(0).Kind
			for i := 0; i < 3; i++ {
				a := sig.At(i)
				if a.Kind != kind || a.Rank != 1 || a.Layout != accel.LayoutContiguous {
					return nil, accel.ErrUnsupported
				}
			}
			switch kind {
			case accel.KindFloat64:
				return muladdContig[float64](), nil
			case accel.KindFloat32:
				return muladdContig[float32](), nil
			}
			return nil, accel.ErrUnsupported
		},
	}
}

// refMulAdd computes x*y + z element-wise. The result takes x's kind.
func refMulAdd(args []accel.Value) (accel.Value, error) {
	x, y, z, err := threeBuffers("muladd", args)
	if err != nil {
		return accel.Value{}, err
	}
	out := accel.NewBuffer(x.Kind(), x.Shape()...)
	for i, n := 0, x.Len(); i < n; i++ {
		out.SetFlat(x.AtFlat(i)*y.AtFlat(i)+z.AtFlat(i), i)
	}
	return accel.BufferValue(out), nil
}

func dotKernel() *accel.Kernel {
	return &accel.Kernel{
		Name: "dot",
		Ref:  refDot,
		// Half precision is declared unsupported up front so calls skip
		// the build attempt and go straight to the reference body.
		Rejects: func(sig accel.TypeSignature) bool {
			for i := 0; i < sig.NumArgs(); i++ {
				if sig.At(i).Kind == accel.KindFloat16 {
					return true
				}
			}
			return false
		},
		Build: func(sig accel.TypeSignature) (accel.Fn, error) {
			if sig.NumArgs() != 2 {
				return nil, accel.ErrUnsupported
			}
			kind := sig.At(0).Kind
			for i := 0; i < 2; i++ {
				a := sig.At(i)
				if a.Kind != kind || a.Rank != 1 || a.Layout != accel.LayoutContiguous {
					return nil, accel.ErrUnsupported
				}
			}
			switch kind {
			case accel.KindFloat64:
				return dotContig[float64](), nil
			case accel.KindFloat32:
				return dotContig[float32](), nil
			}
			return nil, accel.ErrUnsupported
		},
	}
}

// refDot computes Σ a[i]*b[i] in float64, whatever the buffer kinds.
func refDot(args []accel.Value) (accel.Value, error) {
	if len(args) != 2 || args[0].IsScalar() || args[1].IsScalar() {
		return accel.Value{}, fmt.Errorf("dot: want (buffer, buffer), got %s", accel.SignatureOf(args...))
	}
	a, b := args[0].Buffer(), args[1].Buffer()
	if err := sameShape("dot", a, b); err != nil {
		return accel.Value{}, err
	}
	var sum float64
	for i, n := 0, a.Len(); i < n; i++ {
		sum += a.AtFlat(i) * b.AtFlat(i)
	}
	return accel.ScalarValue(sum), nil
}

// sameShape is the shape check shared verbatim by reference bodies and
// specialized variants, so both paths reject exactly the same inputs.
func sameShape(kernel string, bufs ...*accel.Buffer) error {
	for _, b := range bufs[1:] {
		if !slices.Equal(b.Shape(), bufs[0].Shape()) {
			return fmt.Errorf("%s: %w: %v vs %v", kernel, accel.ErrShapeMismatch, bufs[0].Shape(), b.Shape())
		}
	}
	return nil
}

func threeBuffers(kernel string, args []accel.Value) (x, y, z *accel.Buffer, err error) {
	if len(args) != 3 || args[0].IsScalar() || args[1].IsScalar() || args[2].IsScalar() {
		return nil, nil, nil, fmt.Errorf("%s: want three buffers, got %s", kernel, accel.SignatureOf(args...))
	}
	x, y, z = args[0].Buffer(), args[1].Buffer(), args[2].Buffer()
	if err := sameShape(kernel, x, y, z); err != nil {
		return nil, nil, nil, err
	}
	return x, y, z, nil
}
