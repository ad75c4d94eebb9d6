package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewContextsCommand creates the contexts command.
func NewContextsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "contexts",
		Short:         "List the contexts the active policy defines",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContexts(rootOpts, cmd)
		},
	}
	return cmd
}

// contextEntry is one row of the contexts listing.
type contextEntry struct {
	Context     string  `json:"context"`
	Description string  `json:"description,omitempty"`
	MaxDrift    float64 `json:"max_drift"`
	MaxEntropy  float64 `json:"max_entropy"`
	MaxVariance float64 `json:"max_variance"`
}

func runContexts(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	p, err := loadPolicy(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading policy", err)
	}

	var entries []contextEntry
	for _, name := range p.Contexts() {
		profile := p.Profiles[name]
		entries = append(entries, contextEntry{
			Context:     name,
			Description: profile.Description,
			MaxDrift:    profile.MaxDrift,
			MaxEntropy:  profile.MaxEntropy,
			MaxVariance: profile.MaxVariance,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%-15s drift<=%.2f entropy<=%.2f variance<=%.1f  %s\n",
			e.Context, e.MaxDrift, e.MaxEntropy, e.MaxVariance, e.Description)
	}
	return nil
}
