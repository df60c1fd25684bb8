//go:build example
// +build example

// Copyright 2024 Josh Deprez
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

// The dialoguec binary compiles YAML or script conversations into the
// compact binary format (.dlgc).
//
// Quick usage from the root of the repo:
//
//	go run -tags example ./cmd/dialoguec -o /tmp/gate.dlgc testdata/gate.dlg
//
// The "example" build tag is used to prevent this being installed to ~/go/bin
// if you use the go get command.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/DrJosh9000/dialogue"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var (
		output       string
		settingsPath string
	)
	cmd := &cobra.Command{
		Use:   "dialoguec [-o OUTPUT] CONVERSATION_FILE",
		Short: "Compile a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := dialogue.LoadSettingsFile(settingsPath)
			if err != nil {
				return err
			}
			conv, err := dialogue.LoadFile(args[0], settings.DefaultHold)
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".dlgc"
			}
			if err := dialogue.WriteCompiledFile(output, conv); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"conversation": conv.Name,
				"lines":        len(conv.Lines),
				"output":       output,
			}).Info("Compiled conversation")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: input with .dlgc extension)")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "YAML settings file")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
