package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tada/pljava-sub016/internal/order"
)

// GraphOptions holds flags for the graph command.
type GraphOptions struct {
	*RootOptions
}

// GraphResult is the JSON payload of the graph command.
type GraphResult struct {
	SnippetCount int          `json:"snippet_count"`
	Edges        []order.Edge `json:"edges"`
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "graph <manifest-dir>",
		Short: "Print the resolved dependency edges",
		Long: `Load a snippet manifest and print every provides→requires edge the
graph builder resolves, without scheduling. Useful for debugging an
unexpected ordering or an unresolved cycle report.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(opts, args[0], cmd)
		},
	}

	return cmd
}

func runGraph(opts *GraphOptions, manifestDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	snippets, err := loadSnippets(formatter, manifestDir)
	if err != nil {
		return err
	}

	result := GraphResult{
		SnippetCount: len(snippets),
		Edges:        order.Edges(snippets),
	}
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "%d snippet(s), %d edge(s)\n", result.SnippetCount, len(result.Edges))
		for _, e := range result.Edges {
			fmt.Fprintf(w, "  %s -> %s [%s]\n", e.Provider, e.Requirer, e.Tag)
		}
	})
}
