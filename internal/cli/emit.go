package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tada/pljava-sub016/internal/catalog"
	"github.com/tada/pljava-sub016/internal/descriptor"
)

// EmitOptions holds flags for the emit command.
type EmitOptions struct {
	*RootOptions
	OutDir  string // directory for the two descriptor files
	Name    string // descriptor name, used for file names and catalog rows
	Catalog string // optional catalog database path
}

// EmitResult is the JSON payload of a successful emit.
type EmitResult struct {
	Name        string `json:"name"`
	ContentHash string `json:"content_hash"`
	InstallPath string `json:"install_path"`
	RemovePath  string `json:"remove_path"`
	CatalogID   int64  `json:"catalog_id,omitempty"`
}

// NewEmitCommand creates the emit command.
func NewEmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "emit <manifest-dir>",
		Short: "Render and write the deployment descriptor halves",
		Long: `Load a snippet manifest, schedule it and write the install and remove
descriptor files. With --catalog, the emission is also recorded for
drift tracking.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", ".", "output directory for descriptor files")
	cmd.Flags().StringVar(&opts.Name, "name", "deployment", "descriptor name")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "catalog database path (omit to skip recording)")

	return cmd
}

func runEmit(opts *EmitOptions, manifestDir string, cmd *cobra.Command) error {
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

	desc := descriptor.Render(plan)

	installPath := filepath.Join(opts.OutDir, opts.Name+".install.sql")
	removePath := filepath.Join(opts.OutDir, opts.Name+".remove.sql")
	if err := os.WriteFile(installPath, []byte(desc.InstallText()), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "writing install descriptor", err)
	}
	if err := os.WriteFile(removePath, []byte(desc.RemoveText()), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "writing remove descriptor", err)
	}
	formatter.VerboseLog("Wrote %s and %s", installPath, removePath)

	result := EmitResult{
		Name:        opts.Name,
		ContentHash: desc.Hash(),
		InstallPath: installPath,
		RemovePath:  removePath,
	}

	if opts.Catalog != "" {
		id, err := recordEmission(cmd, opts, plan.Deterministic, len(snippets), desc)
		if err != nil {
			return err
		}
		result.CatalogID = id
		formatter.VerboseLog("Recorded catalog entry %d", id)
	}

	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "descriptor %s\n", result.Name)
		fmt.Fprintf(w, "  hash:    %s\n", result.ContentHash)
		fmt.Fprintf(w, "  install: %s\n", result.InstallPath)
		fmt.Fprintf(w, "  remove:  %s\n", result.RemovePath)
		if result.CatalogID != 0 {
			fmt.Fprintf(w, "  catalog: entry %d\n", result.CatalogID)
		}
	})
}

func recordEmission(cmd *cobra.Command, opts *EmitOptions, deterministic bool, snippetCount int, desc *descriptor.Descriptor) (int64, error) {
	cat, err := catalog.Open(opts.Catalog)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "opening catalog", err)
	}
	defer cat.Close()

	id, err := cat.Record(cmd.Context(), catalog.Entry{
		Name:          opts.Name,
		ContentHash:   desc.Hash(),
		Deterministic: deterministic,
		SnippetCount:  snippetCount,
		InstallText:   desc.InstallText(),
		RemoveText:    desc.RemoveText(),
	})
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "recording emission", err)
	}
	return id, nil
}
