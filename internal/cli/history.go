package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tada/pljava-sub016/internal/catalog"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Catalog string
	Name    string
	Limit   int
}

// HistoryEntry is one catalog row in the JSON payload.
type HistoryEntry struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ContentHash   string `json:"content_hash"`
	Deterministic bool   `json:"deterministic"`
	SnippetCount  int    `json:"snippet_count"`
	CreatedAt     string `json:"created_at"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded descriptor emissions",
		Long: `List descriptor emissions recorded in a catalog, newest first.
Matching content hashes across builds mean the descriptor did not drift.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "catalog database path (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "filter by descriptor name")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum entries to list")
	cmd.MarkFlagRequired("catalog")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := catalog.Open(opts.Catalog)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening catalog", err)
	}
	defer cat.Close()

	entries, err := cat.List(cmd.Context(), opts.Name, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "listing catalog", err)
	}

	payload := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		payload[i] = HistoryEntry{
			ID:            e.ID,
			Name:          e.Name,
			ContentHash:   e.ContentHash,
			Deterministic: e.Deterministic,
			SnippetCount:  e.SnippetCount,
			CreatedAt:     e.CreatedAt,
		}
	}

	return formatter.Success(payload, func(w io.Writer) {
		if len(payload) == 0 {
			fmt.Fprintln(w, "no recorded emissions")
			return
		}
		for _, e := range payload {
			fmt.Fprintf(w, "%4d  %-20s  %s  snippets=%d  deterministic=%v  %s\n",
				e.ID, e.Name, e.ContentHash[:12], e.SnippetCount, e.Deterministic, e.CreatedAt)
		}
	})
}
