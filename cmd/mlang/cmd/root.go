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

// Package cmd implements the mlang command-line tool: "interpret" runs a
// file once, "repl" starts an interactive session. Both share the same
// global --debug and --no-color flags.
package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

type flagName string

const (
	flagDebug   flagName = "debug"
	flagNoColor flagName = "no-color"
)

// Main runs the mlang command line tool against os.Args and returns a
// process exit code; it is the single entry point shared by cmd/mlang's
// main function and the script-driven CLI tests.
func Main() int {
	if err := New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// New builds the root *cobra.Command for the mlang tool.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:           "mlang",
		Short:         "interpret programs in the mlang language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool(string(flagDebug), false, "dump the AST of each parsed unit")
	root.PersistentFlags().Bool(string(flagNoColor), false, "disable colored REPL prompts")

	root.AddCommand(newInterpretCmd())
	root.AddCommand(newReplCmd())
	return root
}

// debugger returns a driver.Debugger that pretty-prints every labeled
// artifact to cmd's stderr when --debug is set, or nil otherwise.
func debugger(cmd *cobra.Command) func(label string, v interface{}) {
	on, _ := cmd.Flags().GetBool(string(flagDebug))
	if !on {
		return nil
	}
	return func(label string, v interface{}) {
		fmt.Fprintf(cmd.ErrOrStderr(), "-- %s --\n", label)
		pretty.Fprintf(cmd.ErrOrStderr(), "%# v\n", v)
	}
}
