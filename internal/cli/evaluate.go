package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/gonogo/internal/gate"
	"github.com/roach88/gonogo/internal/store"
)

// EvaluateOptions holds flags for the evaluate command.
type EvaluateOptions struct {
	*RootOptions
	Context         string
	Readiness       float64
	Entropy         float64
	Drift           float64
	Safety          float64
	Trend           float64
	Variance        float64
	History         []float64
	FallbackDefault bool
	FailClosed      bool
	DBPath          string
}

// NewEvaluateCommand creates the evaluate command.
func NewEvaluateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvaluateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate decision metrics against a context's bands",
		Long: `Evaluate the six decision metrics against one context's bands and
print the explainable record.

A readiness history of two or more points overrides the trend and
variance flags with estimator-derived values.

Example:
  gonogo evaluate --context robot_control --readiness 50 --entropy 0.5 \
    --drift 0.25 --safety 1 --trend 0.5 --variance 4`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Context, "context", "default", "band profile context")
	cmd.Flags().Float64Var(&opts.Readiness, "readiness", 0, "readiness index (>= 0)")
	cmd.Flags().Float64Var(&opts.Entropy, "entropy", 0, "output entropy [0, 1]")
	cmd.Flags().Float64Var(&opts.Drift, "drift", 0, "semantic drift [0, 1]")
	cmd.Flags().Float64Var(&opts.Safety, "safety", 1, "binary safety score (0 or 1)")
	cmd.Flags().Float64Var(&opts.Trend, "trend", 0, "readiness trend")
	cmd.Flags().Float64Var(&opts.Variance, "variance", 0, "readiness variance (>= 0)")
	cmd.Flags().Float64SliceVar(&opts.History, "history", nil, "readiness history, oldest first")
	cmd.Flags().BoolVar(&opts.FallbackDefault, "fallback-default", false, "fall back to the default profile on unknown context")
	cmd.Flags().BoolVar(&opts.FailClosed, "fail-closed", false, "emit a BLOCK record instead of an error when evaluation fails")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "append the decision to this audit log database")

	return cmd
}

func runEvaluate(opts *EvaluateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	p, err := loadPolicy(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading policy", err)
	}

	bands, err := p.Bands(opts.Context)
	if err != nil && opts.FallbackDefault {
		bands, err = p.BandsOrDefault(opts.Context)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "resolving context bands", err)
	}

	metrics := gate.CoreMetrics{
		Readiness: opts.Readiness,
		Entropy:   opts.Entropy,
		Drift:     opts.Drift,
		Safety:    opts.Safety,
		Trend:     opts.Trend,
		Variance:  opts.Variance,
	}

	result, err := gate.New(bands).Evaluate(metrics, opts.History)
	if err != nil {
		if !opts.FailClosed {
			return WrapExitError(ExitFailure, "evaluation rejected", err)
		}
		// Fail-closed: the caller gets a BLOCK record naming the
		// validation failure instead of no verdict at all.
		result = gate.DecisionResult{
			Verdict:  gate.VerdictBlock,
			RuleFail: true,
			Reasons:  []string{fmt.Sprintf("fail-closed: %v", err)},
			Protocol: gate.Protocol,
			Context:  bands.Context,
		}
		if outErr := emitDecision(formatter, result); outErr != nil {
			return outErr
		}
		return NewExitError(ExitFailure, "evaluation failed closed")
	}

	if opts.DBPath != "" {
		id, err := appendDecision(cmd, opts.DBPath, result)
		if err != nil {
			return WrapExitError(ExitCommandError, "appending to audit log", err)
		}
		slog.Debug("decision persisted", "id", id, "db", opts.DBPath)
	}

	return emitDecision(formatter, result)
}

// emitDecision writes the explainable record in the configured format.
func emitDecision(f *OutputFormatter, result gate.DecisionResult) error {
	record := result.Record()
	if f.Format == "json" {
		return f.Success(json.RawMessage(record))
	}
	fmt.Fprintln(f.Writer, string(record))
	return nil
}

// appendDecision persists one decision and returns its ID.
func appendDecision(cmd *cobra.Command, path string, result gate.DecisionResult) (string, error) {
	s, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer s.Close()
	return s.Append(cmd.Context(), store.UUIDv7Generator{}, result)
}
