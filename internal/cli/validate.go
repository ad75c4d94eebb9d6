package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gonogo/internal/policy"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <policy.yaml>",
		Short: "Validate a policy file",
		Long: `Validate a policy YAML file: schema conformance, unknown fields,
and the band ordering invariant of every context.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	p, err := policy.Load(path)
	if err != nil {
		if outErr := formatter.Error("POLICY_INVALID", err.Error(), nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitFailure, "policy validation failed")
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{
			"policy":   p.Name,
			"version":  p.Version,
			"contexts": p.Contexts(),
		})
	}
	fmt.Fprintf(formatter.Writer, "%s %s: %d contexts, all bands valid\n",
		p.Name, p.Version, len(p.Contexts()))
	return nil
}
