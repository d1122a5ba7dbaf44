/*
Copyright © 2025 CODA Project

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-creation/tokenscope/cmd"
)

// Version information (populated during build)
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	// Cancel the context on SIGINT/SIGTERM so the viewer can restore the terminal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cmd.SetVersion(version, commit, date)
	code := cmd.Execute(ctx)

	stop()
	os.Exit(code)
}
