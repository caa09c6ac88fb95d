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

import "strings"

// Layout classifies how a buffer's elements sit in memory. Contiguous and
// strided buffers need different generated index arithmetic, so layout is
// part of the cache key.
type Layout uint8

const (
	LayoutContiguous Layout = iota
	LayoutStrided
)

func (l Layout) String() string {
	if l == LayoutStrided {
		return "s"
	}
	return "c"
}

// MaxArgs is the largest argument count a TypeSignature can describe.
// Calls with more arguments are classified unsupported and served by the
// fallback path.
const MaxArgs = 6

// ArgType is the signature of one argument position: element kind, rank
// (0 for scalars) and layout class. It deliberately excludes buffer
// lengths — the same specialized code serves every length.
type ArgType struct {
	Kind   ElemKind
	Rank   uint8
	Layout Layout
}

// TypeSignature is the cache key half derived from a call's arguments:
// the ArgType of each position. It is a fixed-size comparable value, so
// extraction allocates nothing and map lookup needs no serialization.
type TypeSignature struct {
	n    uint8
	args [MaxArgs]ArgType
}

// SignatureOf derives the TypeSignature of a call deterministically from
// its arguments. It never fails: argument shapes outside the supported
// numeric domain (zero Values, nil buffers, rank-0 buffers, too many
// arguments) produce a signature whose Supported method reports false,
// which the dispatcher routes to the fallback path.
//
// Rank-0 buffers in particular must not be classified: they would be
// indistinguishable from scalars in the signature, and a variant built
// for a scalar position reads the argument's scalar payload, not its
// buffer storage.
func SignatureOf(args ...Value) TypeSignature {
	var sig TypeSignature
	if len(args) > MaxArgs {
		sig.n = 1
		sig.args[0] = ArgType{Kind: KindUnsupported}
		return sig
	}
	sig.n = uint8(len(args))
	for i, a := range args {
		if a.IsScalar() {
			sig.args[i] = ArgType{Kind: a.Kind(), Rank: 0, Layout: LayoutContiguous}
			continue
		}
		b := a.Buffer()
		if b.Rank() == 0 {
			sig.args[i] = ArgType{Kind: KindUnsupported}
			continue
		}
		sig.args[i] = ArgType{Kind: b.Kind(), Rank: uint8(b.Rank()), Layout: b.Layout()}
	}
	return sig
}

// Sig builds a TypeSignature from explicit argument types, for warm lists
// and builder switch statements.
func Sig(args ...ArgType) TypeSignature {
	var sig TypeSignature
	if len(args) > MaxArgs {
		panic("accel: Sig with more than MaxArgs argument types")
	}
	sig.n = uint8(len(args))
	copy(sig.args[:], args)
	return sig
}

// Vec describes a rank-1 contiguous buffer argument of the given kind.
func Vec(kind ElemKind) ArgType { return ArgType{Kind: kind, Rank: 1, Layout: LayoutContiguous} }

// VecStrided describes a rank-1 strided buffer argument.
func VecStrided(kind ElemKind) ArgType { return ArgType{Kind: kind, Rank: 1, Layout: LayoutStrided} }

// ScalarArg describes a scalar argument position.
func ScalarArg() ArgType { return ArgType{Kind: KindFloat64, Rank: 0, Layout: LayoutContiguous} }

// NumArgs returns the number of argument positions.
func (s TypeSignature) NumArgs() int { return int(s.n) }

// At returns the ArgType of position i.
func (s TypeSignature) At(i int) ArgType { return s.args[i] }

// Supported reports whether every argument position is inside the
// supported numeric domain. Unsupported signatures are never compiled.
func (s TypeSignature) Supported() bool {
	for i := 0; i < int(s.n); i++ {
		if s.args[i].Kind == KindUnsupported {
			return false
		}
	}
	return true
}

// String renders the signature for logs and diagnostics, e.g.
// "f64x1c|f64x0c" for (float64 vector, scalar).
func (s TypeSignature) String() string {
	if s.n == 0 {
		return "()"
	}
	var sb strings.Builder
	for i := 0; i < int(s.n); i++ {
		if i > 0 {
			sb.WriteByte('|')
		}
		a := s.args[i]
		sb.WriteString(a.Kind.String())
		sb.WriteByte('x')
		sb.WriteByte('0' + a.Rank)
		sb.WriteString(a.Layout.String())
	}
	return sb.String()
}
