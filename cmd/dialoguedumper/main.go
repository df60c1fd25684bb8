//go:build example
// +build example

// Copyright 2021 Josh Deprez
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

// The dialoguedumper binary prints a conversation in a script-like format.
//
// Quick usage from the root of the repo:
//
//	go run -tags example ./cmd/dialoguedumper testdata/gate.dlgc
//
// The "example" build tag is used to prevent this being installed to ~/go/bin
// if you use the go get command.
package main

import (
	"fmt"
	"os"

	"github.com/DrJosh9000/dialogue"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:   "dialoguedumper CONVERSATION_FILE",
		Short: "Print a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := dialogue.LoadFile(args[0], dialogue.DefaultHold)
			if err != nil {
				return fmt.Errorf("couldn't read conversation file: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), dialogue.FormatConversation(conv))
			return nil
		},
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
