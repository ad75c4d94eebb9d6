package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gonogo/internal/store"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	DBPath  string
	Context string
	Limit   int
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log [decision-id]",
		Short: "Inspect the decision audit log",
		Long: `List recent decisions from an audit log database, or show one
decision's full explainable record by ID.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runLogGet(opts, cmd, args[0])
			}
			return runLogList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "audit log database path (required)")
	cmd.Flags().StringVar(&opts.Context, "context", "", "only list decisions for this context")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum decisions to list")
	cobra.CheckErr(cmd.MarkFlagRequired("db"))

	return cmd
}

func openLog(opts *LogOptions) (*store.Store, error) {
	return store.Open(opts.DBPath)
}

func runLogList(opts *LogOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	s, err := openLog(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening audit log", err)
	}
	defer s.Close()

	var decisions []store.Decision
	if opts.Context != "" {
		decisions, err = s.ListByContext(cmd.Context(), opts.Context, opts.Limit)
	} else {
		decisions, err = s.List(cmd.Context(), opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "listing decisions", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(decisions)
	}
	for _, d := range decisions {
		fmt.Fprintf(formatter.Writer, "%s  %s  %-7s %-15s %s\n",
			d.ID, d.CreatedAt, d.Verdict, d.Context, d.Reason)
	}
	return nil
}

func runLogGet(opts *LogOptions, cmd *cobra.Command, id string) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	s, err := openLog(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening audit log", err)
	}
	defer s.Close()

	d, err := s.Get(cmd.Context(), id)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading decision", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(d)
	}
	fmt.Fprintln(formatter.Writer, d.Record)
	return nil
}
