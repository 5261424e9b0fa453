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
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"rivaas.dev/apiversioning"
)

// versionInfo is the JSON form of a parsed version.
type versionInfo struct {
	Input   string `json:"input"`
	Version string `json:"version"`
	Group   string `json:"group,omitempty"`
	Major   *int   `json:"major,omitempty"`
	Minor   *int   `json:"minor,omitempty"`
	Status  string `json:"status,omitempty"`
}

func newVersionInfo(input string, v apiversioning.Version) versionInfo {
	info := versionInfo{
		Input:   input,
		Version: v.String(),
		Group:   v.Format(apiversioning.FormatGroup),
		Status:  v.Status(),
	}
	if major, ok := v.Major(); ok {
		info.Major = &major
	}
	if minor, ok := v.Minor(); ok {
		info.Minor = &minor
	}
	return info
}

func newParseCmd() *cobra.Command {
	var (
		format     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "parse VERSION...",
		Short: "Parse API versions",
		Long: `Parse each argument as an API version and print it in the requested format.
Formats: F, FF, G, GG, V, VV, VVV, S, M, m.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var infos []versionInfo
			var errs []error
			for _, arg := range args {
				v, err := apiversioning.Parse(arg)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if jsonOutput {
					infos = append(infos, newVersionInfo(arg, v))
					continue
				}
				fmt.Fprintln(out, v.Format(format))
			}
			if jsonOutput {
				if err := writeJSON(out, infos); err != nil {
					return err
				}
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", apiversioning.FormatFull, "Output format specifier")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the version components as JSON")

	return cmd
}

func newSortCmd() *cobra.Command {
	var reverse, unique bool

	cmd := &cobra.Command{
		Use:   "sort VERSION...",
		Short: "Sort API versions",
		Long:  `Sort API versions from oldest to newest. Releases sort before status versions of the same number, and group versions sort after numbered ones.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			versions := make([]apiversioning.Version, 0, len(args))
			for _, arg := range args {
				v, err := apiversioning.Parse(arg)
				if err != nil {
					return err
				}
				versions = append(versions, v)
			}

			slices.SortStableFunc(versions, apiversioning.Compare)
			if unique {
				versions = slices.CompactFunc(versions, apiversioning.Version.Equal)
			}
			if reverse {
				slices.Reverse(versions)
			}

			for _, v := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Sort from newest to oldest")
	cmd.Flags().BoolVarP(&unique, "unique", "u", false, "Drop versions equal to a previous one")

	return cmd
}

func newNamespaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "namespace NAMESPACE...",
		Short: "Find the API versions in namespaces or package paths",
		Example: `  apiversion namespace example.com/api/v1_1/users
  apiversion namespace Contoso.Api.v2018_04_01.Controllers`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ns := range args {
				versions := apiversioning.ParseNamespace(ns)
				if len(versions) == 0 {
					logger(cmd.Context()).Warn("no version found", "namespace", ns)
					continue
				}
				texts := lo.Map(versions, func(v apiversioning.Version, _ int) string { return v.String() })
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ns, strings.Join(lo.Uniq(texts), ", "))
			}
			return nil
		},
	}
}
