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

// accelinfo inspects the kernel sets that ship with go-accelerate: which
// kernels exist, which signatures they specialize for, and the host
// features that steer builder decisions.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-accelerate/accel"
	"github.com/ajroetker/go-accelerate/accel/contrib/vecops"
	"github.com/ajroetker/go-accelerate/accel/contrib/window"
)

func main() {
	root := &cobra.Command{
		Use:           "accelinfo",
		Short:         "Inspect go-accelerate kernels and host features",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(kernelsCmd(), featuresCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func kernelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List the bundled kernels and probe their specializations",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := accel.NewRegistry()
			if err := vecops.Register(reg); err != nil {
				return err
			}
			if err := window.Register(reg); err != nil {
				return err
			}

			title := cases.Title(language.English)
			for _, name := range reg.Names() {
				k, _ := reg.Lookup(name)
				pretty := title.String(strings.ReplaceAll(name, "_", " "))
				fmt.Printf("%-24s %s\n", name, pretty)
				for _, sig := range probeSignatures() {
					fn, err := k.Build(sig)
					if err != nil || fn == nil {
						continue
					}
					fmt.Printf("    specializes %s\n", sig)
				}
			}
			return nil
		},
	}
}

// probeSignatures covers the argument forms the bundled kernels accept.
func probeSignatures() []accel.TypeSignature {
	var sigs []accel.TypeSignature
	for _, kind := range []accel.ElemKind{accel.KindFloat64, accel.KindFloat32} {
		v, s := accel.Vec(kind), accel.ScalarArg()
		sigs = append(sigs,
			accel.Sig(v, s),                      // scale
			accel.Sig(accel.VecStrided(kind), s), // scale, strided
			accel.Sig(v, v),                      // dot
			accel.Sig(v, v, v),                   // muladd
			accel.Sig(v, s, s),                   // sliding_*
			accel.Sig(v, v, s, s),                // sliding_*, windowed
		)
	}
	return sigs
}

func featuresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Print the host features builders key off",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("GOOS:        %s\n", runtime.GOOS)
			fmt.Printf("GOARCH:      %s\n", runtime.GOARCH)
			fmt.Printf("NumCPU:      %d\n", runtime.NumCPU())
			fmt.Printf("vector hint: %d\n", accel.VectorHint())
		},
	}
}
