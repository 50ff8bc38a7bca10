package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/debemdeboas/brandi/internal/routes"
	"github.com/debemdeboas/brandi/internal/view"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rows := make([][]string, 0)
			for _, e := range routes.Storefront().Routes() {
				rows = append(rows, []string{
					strings.Repeat("  ", e.Depth) + e.Pattern,
					e.Name,
					joinViews(e.Views),
					e.Redirect,
				})
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				}).
				Headers("PATTERN", "NAME", "VIEWS", "REDIRECT").
				Rows(rows...)

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Print the view chain each path resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			for _, p := range args {
				res, err := routes.Storefront().Resolve(p)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s  %s\n", pathStyle.Render(p), errStyle.Render(err.Error()))
					continue
				}

				landed := res.Path
				if res.Redirected() {
					landed = strings.Join(append([]string{res.Requested}, res.Redirects...), " -> ")
				}
				fmt.Fprintf(out, "%s  [%s]\n", pathStyle.Render(landed), joinViews(res.Views()))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d paths did not resolve", failed, len(args))
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			rev := commit
			if info, ok := debug.ReadBuildInfo(); ok && rev == "none" {
				for _, s := range info.Settings {
					if s.Key == "vcs.revision" {
						rev = s.Value
						break
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "brandi %s (commit %s, %s %s/%s)\n",
				version, rev, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

func joinViews(ids []view.ID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, " > ")
}
