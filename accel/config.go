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
	"log/slog"
	"os"
	"time"
)

// NoCompileEnv is the environment variable that forces the fallback path
// for every call, equivalent to Config.DisableCompilation. Useful for
// A/B-ing compiled variants against the reference bodies without code
// changes.
const NoCompileEnv = "ACCEL_NO_COMPILE"

// Config tunes a Dispatcher. The zero value compiles eagerly on first
// use, waits for builds without a deadline, and reports build failures to
// the caller.
type Config struct {
	// DisableCompilation forces the fallback path for all calls. No
	// variants are built or consulted.
	DisableCompilation bool

	// CompileTimeout bounds how long a call waits for an in-flight
	// build. When exceeded, the call is served by the fallback path;
	// the build keeps running and may publish for later callers.
	// Zero means wait indefinitely.
	CompileTimeout time.Duration

	// FallbackOnFailure routes calls hitting a transient build failure
	// to the fallback path instead of surfacing the CompileError.
	// Either way the key stays open for retry.
	FallbackOnFailure bool

	// WarmList is pre-built by Warmup, so the build latency is paid at
	// startup instead of on the first unlucky call.
	WarmList []WarmEntry

	// Logger receives build lifecycle events. nil means slog.Default().
	Logger *slog.Logger
}

// WarmEntry names one (kernel, signature) pair to pre-compile.
type WarmEntry struct {
	Kernel string
	Sig    TypeSignature
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func noCompileEnv() bool {
	v := os.Getenv(NoCompileEnv)
	return v != "" && v != "0"
}
