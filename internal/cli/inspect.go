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
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rivaas.dev/apiversioning/policy"
	"rivaas.dev/apiversioning/report"
)

func newInspectCmd() *cobra.Command {
	var (
		headers []string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inspect URL",
		Short: "Show the versions and lifecycle a server reports",
		Example: `  apiversion inspect https://api.example.com/orders
  apiversion inspect -H "api-version: 1.0" https://api.example.com/orders`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, args[0], nil)
			if err != nil {
				return err
			}
			for _, h := range headers {
				name, value, ok := strings.Cut(h, ":")
				if !ok {
					return fmt.Errorf("invalid header %q: want NAME: VALUE", h)
				}
				req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
			}

			client := &http.Client{Timeout: timeout}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close() //nolint:errcheck // read-only response
			_, _ = io.Copy(io.Discard, resp.Body)

			logger(cmd.Context()).Debug("response received", "status", resp.StatusCode, "url", req.URL.String())
			printInfo(cmd.OutOrStdout(), resp.Status, report.Read(resp.Header, req.URL), time.Now())
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Request header, as NAME: VALUE")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	return cmd
}

func printInfo(w io.Writer, status string, info report.Info, now time.Time) {
	fmt.Fprintf(w, "status: %s\n", status)
	fmt.Fprintf(w, "supported: %s\n", report.FormatVersions(info.Supported))
	fmt.Fprintf(w, "deprecated: %s\n", report.FormatVersions(info.Deprecated))

	if date, ok := info.Sunset.Date(); ok {
		fmt.Fprintf(w, "sunset: %s\n", date.UTC().Format(time.RFC3339))
	}
	if date, ok := info.Deprecation.Date(); ok {
		state := "announced"
		if info.IsDeprecated(now) {
			state = "in effect"
		}
		fmt.Fprintf(w, "deprecation: %s (%s)\n", date.UTC().Format(time.RFC3339), state)
	}
	printLinks(w, info.Sunset.Links())
	printLinks(w, info.Deprecation.Links())

	for _, d := range info.OpenAPI {
		fmt.Fprintf(w, "openapi %s: %s\n", d.Version, d.URL)
	}
}

func printLinks(w io.Writer, links []policy.Link) {
	for _, l := range links {
		fmt.Fprintf(w, "link (%s): %s\n", l.Relation, l.Target)
	}
}
