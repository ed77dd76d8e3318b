package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tada/pljava-sub016/internal/order"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
}

// PlanResult is the JSON payload of a successful plan.
type PlanResult struct {
	RunToken      string   `json:"run_token"`
	Deterministic bool     `json:"deterministic"`
	InstallOrder  []string `json:"install_order"`
	RemoveOrder   []string `json:"remove_order"`
	Subsumed      []string `json:"subsumed,omitempty"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan <manifest-dir>",
		Short: "Compute the install and remove orderings",
		Long: `Load a snippet manifest, build the dependency graph and print both
orderings without rendering descriptor text.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, args[0], cmd)
		},
	}

	return cmd
}

func runPlan(opts *PlanOptions, manifestDir string, cmd *cobra.Command) error {
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

	plan, err := buildPlan(formatter, snippets, opts.Deterministic)
	if err != nil {
		return err
	}

	result := planResult(plan)
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "run %s (deterministic=%v)\n", result.RunToken, result.Deterministic)
		fmt.Fprintln(w, "install order:")
		for i, name := range result.InstallOrder {
			fmt.Fprintf(w, "  %2d. %s\n", i+1, name)
		}
		fmt.Fprintln(w, "remove order:")
		for i, name := range result.RemoveOrder {
			fmt.Fprintf(w, "  %2d. %s\n", i+1, name)
		}
		for _, name := range result.Subsumed {
			fmt.Fprintf(w, "subsumed: %s\n", name)
		}
	})
}

func planResult(plan *order.Plan) PlanResult {
	result := PlanResult{
		RunToken:      plan.RunToken,
		Deterministic: plan.Deterministic,
		InstallOrder:  scheduledNames(plan.Install),
		RemoveOrder:   scheduledNames(plan.Remove),
	}
	for _, s := range plan.Remove {
		if s.Subsumed() {
			result.Subsumed = append(result.Subsumed, s.Name())
		}
	}
	return result
}

func scheduledNames(seq []*order.Scheduled) []string {
	names := make([]string, len(seq))
	for i, s := range seq {
		names[i] = s.Name()
	}
	return names
}
