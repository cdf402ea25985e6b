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

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mlang.dev/go/internal/driver"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd)
		},
	}
}

func runRepl(cmd *cobra.Command) error {
	noColor, _ := cmd.Flags().GetBool(string(flagNoColor))
	prompt := "mlang> "
	if !noColor {
		prompt = "\033[36mmlang>\033[0m "
	}

	out := cmd.OutOrStdout()
	sess := driver.NewSession(out)
	sess.Debug = debugger(cmd)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	var buf strings.Builder
	depth := 0

	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := scanner.Text()
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		buf.WriteString(line)
		buf.WriteByte('\n')

		if depth > 0 {
			fmt.Fprint(out, "...... ")
			continue
		}

		stmt := buf.String()
		buf.Reset()
		depth = 0
		if strings.TrimSpace(stmt) != "" {
			if err := sess.Eval(stmt); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
		}
		fmt.Fprint(out, prompt)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
