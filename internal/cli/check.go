// Copyright 2025 The Rivaas Authors
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

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"rivaas.dev/apiversioning/settings"
	"rivaas.dev/apiversioning/versioning"
)

func newCheckCmd() *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate versioning settings files",
		Long: `Load the settings files in order, later files overriding earlier ones,
validate the result and print a summary. Files may be YAML, TOML or JSON.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if printSchema {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if printSchema {
				_, err := out.Write(settings.Schema())
				return err
			}

			opts := lo.Map(args, func(path string, _ int) settings.Option { return settings.WithFile(path) })
			s, err := settings.Load(cmd.Context(), opts...)
			if err != nil {
				return err
			}

			vopts, err := s.Options()
			if err != nil {
				return err
			}
			if _, err = versioning.New(vopts...); err != nil {
				return err
			}

			logger(cmd.Context()).Debug("settings loaded", "files", args)
			printSummary(out, s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&printSchema, "schema", false, "Print the JSON Schema of settings files instead")

	return cmd
}

func printSummary(w io.Writer, s *settings.Settings) {
	readers := "default"
	if len(s.Readers) > 0 {
		readers = strings.Join(lo.Map(s.Readers, func(rs settings.ReaderSettings, _ int) string {
			if len(rs.Names) == 0 {
				return rs.Type
			}
			return fmt.Sprintf("%s(%s)", rs.Type, strings.Join(rs.Names, ","))
		}), ", ")
	}

	fmt.Fprintf(w, "default version: %s\n", s.DefaultVersion)
	fmt.Fprintf(w, "selector: %s\n", s.Selector)
	fmt.Fprintf(w, "readers: %s\n", readers)
	fmt.Fprintf(w, "sunset policies: %d\n", len(s.Sunset))
	fmt.Fprintf(w, "deprecation policies: %d\n", len(s.Deprecation))
	if t := s.Telemetry; t.Metrics != "" || t.Traces != "" {
		fmt.Fprintf(w, "telemetry: metrics=%s traces=%s\n", lo.CoalesceOrEmpty(t.Metrics, "none"), lo.CoalesceOrEmpty(t.Traces, "none"))
	}
}
