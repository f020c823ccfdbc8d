package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/picatz/xai/internal/history"
	"github.com/picatz/xai/internal/manifest"
	"github.com/spf13/cobra"
)

func newHistoryCommand(a *app, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect archived exchanges",
		Long: `Inspect exchanges archived by earlier runs.

Exchanges are only archived when a history directory is configured, either
with --history or with the history variable of the module manifest.`,
	}

	var limit int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived exchanges, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withArchive(cmd, flags, func(archive *history.Archive) error {
				exchanges, err := archive.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(exchanges) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), styleFaint.Render("no archived exchanges"))
					return nil
				}
				for _, ex := range exchanges {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n",
						styleID.Render(ex.ID),
						styleFaint.Render(ex.CreatedAt.Local().Format(time.DateTime)),
						ex.Model,
						summarize(ex.Input, 60),
					)
				}
				return nil
			})
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of exchanges to list (0 lists all)")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one archived exchange",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withArchive(cmd, flags, func(archive *history.Archive) error {
				ex, err := archive.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printExchange(cmd.OutOrStdout(), ex)
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every archived exchange",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withArchive(cmd, flags, func(archive *history.Archive) error {
				n, err := archive.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d exchanges\n", n)
				return nil
			})
		},
	}

	cmd.AddCommand(listCmd, showCmd, clearCmd)

	return cmd
}

// historyDir returns the --history flag, or else the manifest's history
// variable.
func (a *app) historyDir(flags *rootFlags) (string, error) {
	if flags.history != "" {
		return flags.history, nil
	}

	p, err := a.loadProvider()
	if err != nil {
		return "", err
	}

	dir, err := optionalVariable(p, manifest.VarHistory)
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", &configError{errors.New("no history directory configured (use --history or set XAI_HISTORY)")}
	}
	return dir, nil
}

func (a *app) withArchive(cmd *cobra.Command, flags *rootFlags, fn func(*history.Archive) error) error {
	dir, err := a.historyDir(flags)
	if err != nil {
		return err
	}

	archive, err := history.Open(dir, nil)
	if err != nil {
		return err
	}

	return errors.Join(fn(archive), archive.Close(cmd.Context()))
}

func printExchange(w io.Writer, ex history.Exchange) {
	fmt.Fprintf(w, "%s %s\n", styleBold.Render("id:"), styleID.Render(ex.ID))
	fmt.Fprintf(w, "%s %s\n", styleBold.Render("model:"), ex.Model)
	fmt.Fprintf(w, "%s %s\n", styleBold.Render("created:"), ex.CreatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "\n%s\n%s\n", styleBold.Render("input:"), ex.Input)
	fmt.Fprintf(w, "\n%s\n%s\n", styleBold.Render("output:"), strings.Join(ex.Output, ""))
}

// summarize returns the first line of s, cut to at most n runes.
func summarize(s string, n int) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
