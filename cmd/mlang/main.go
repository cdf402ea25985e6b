// Copyright 2018 The CUE Authors
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

// Command mlang interprets programs written in the language implemented by
// mlang.dev/go: run a file with "mlang interpret <file>" or start an
// interactive session with "mlang repl".
package main

import (
	"os"

	"mlang.dev/go/cmd/mlang/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
