package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gonogo/internal/energy"
)

// ProjectOptions holds flags for the project command.
type ProjectOptions struct {
	*RootOptions
	Intensity     float64
	Polarity      float64
	Stability     float64
	Entropy       float64
	ExternalForce float64
	Awareness     float64
	SubAwareness  float64
	PhaseAngle    float64

	Neural []float64

	Prediction       float64
	EntropyThreshold float64
	DriftThreshold   float64
	RuleFail         bool
	SignedPolarity   bool
}

// NewProjectCommand creates the project command.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProjectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run the eight-stage energy projection over a perception state",
		Long: `Run the eight-stage energy projection over a perception state and
neural vector, printing the derived energies and the threshold verdict.

The neural vector is five comma-separated channel values:
dopamine, serotonin, oxytocin, adrenaline, cortisol.

Example:
  gonogo project --intensity 2 --polarity -0.5 --stability 0.8 \
    --entropy 0.25 --awareness 0.5 --sub-awareness 0.4 \
    --neural 1,2,3,4,5 --prediction 2 --entropy-threshold 0.7`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Intensity, "intensity", 0, "perception intensity (>= 0)")
	cmd.Flags().Float64Var(&opts.Polarity, "polarity", 0, "perception polarity (any real)")
	cmd.Flags().Float64Var(&opts.Stability, "stability", 0, "state stability [0, 1]")
	cmd.Flags().Float64Var(&opts.Entropy, "entropy", 0, "state entropy [0, 1]")
	cmd.Flags().Float64Var(&opts.ExternalForce, "external-force", 0, "external force (any real)")
	cmd.Flags().Float64Var(&opts.Awareness, "awareness", 0, "awareness level [0, 1]")
	cmd.Flags().Float64Var(&opts.SubAwareness, "sub-awareness", 0, "background activation [0, 1]")
	cmd.Flags().Float64Var(&opts.PhaseAngle, "phase", 0, "phase angle in radians (|phase| <= 1000)")
	cmd.Flags().Float64SliceVar(&opts.Neural, "neural", nil, "five neural channel values")
	cmd.Flags().Float64Var(&opts.Prediction, "prediction", 0, "predicted energy input to the memory stage")
	cmd.Flags().Float64Var(&opts.EntropyThreshold, "entropy-threshold", 0.62, "entropy ceiling for the verdict [0, 1]")
	cmd.Flags().Float64Var(&opts.DriftThreshold, "drift-threshold", 0.35, "drift ceiling for the verdict (>= 0)")
	cmd.Flags().BoolVar(&opts.RuleFail, "rule-fail", false, "mark an external rule check as failed")
	cmd.Flags().BoolVar(&opts.SignedPolarity, "signed-polarity", false, "keep the polarity's sign in stage 1")

	return cmd
}

// projectionOutput is the JSON payload for a completed projection.
type projectionOutput struct {
	Perception        float64 `json:"perception"`
	Reflex            float64 `json:"reflex"`
	DirectionalReflex float64 `json:"directional_reflex"`
	Cognitive         float64 `json:"cognitive"`
	Coherence         float64 `json:"coherence"`
	Neural            float64 `json:"neural"`
	Binding           float64 `json:"binding"`
	MemoryEncoding    float64 `json:"memory_encoding"`
	Verdict           string  `json:"verdict"`
}

func runProject(opts *ProjectOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	neural, err := neuralFromSlice(opts.Neural)
	if err != nil {
		return WrapExitError(ExitCommandError, "parsing --neural", err)
	}

	state := energy.PerceptionState{
		Intensity:     opts.Intensity,
		Polarity:      opts.Polarity,
		Stability:     opts.Stability,
		Entropy:       opts.Entropy,
		ExternalForce: opts.ExternalForce,
		Awareness:     opts.Awareness,
		SubAwareness:  opts.SubAwareness,
		PhaseAngle:    opts.PhaseAngle,
	}
	params := energy.GateParams{
		RuleFail:         opts.RuleFail,
		EntropyThreshold: opts.EntropyThreshold,
		DriftThreshold:   opts.DriftThreshold,
	}

	derived, err := energy.ProjectEnergy(state, neural, opts.Prediction, params,
		energy.ProjectionOptions{SignedPolarity: opts.SignedPolarity})
	if err != nil {
		return WrapExitError(ExitFailure, "projection rejected", err)
	}

	out := projectionOutput{
		Perception:        derived.Perception,
		Reflex:            derived.Reflex,
		DirectionalReflex: derived.DirectionalReflex,
		Cognitive:         derived.Cognitive,
		Coherence:         derived.Coherence,
		Neural:            derived.Neural,
		Binding:           derived.Binding,
		MemoryEncoding:    derived.MemoryEncoding,
		Verdict:           string(derived.Verdict),
	}
	if formatter.Format == "json" {
		data, err := json.Marshal(out)
		if err != nil {
			return err
		}
		return formatter.Success(json.RawMessage(data))
	}

	w := formatter.Writer
	fmt.Fprintf(w, "perception:         %.6f\n", out.Perception)
	fmt.Fprintf(w, "reflex:             %.6f\n", out.Reflex)
	fmt.Fprintf(w, "directional_reflex: %.6f\n", out.DirectionalReflex)
	fmt.Fprintf(w, "cognitive:          %.6f\n", out.Cognitive)
	fmt.Fprintf(w, "coherence:          %.6f\n", out.Coherence)
	fmt.Fprintf(w, "neural:             %.6f\n", out.Neural)
	fmt.Fprintf(w, "binding:            %.6f\n", out.Binding)
	fmt.Fprintf(w, "memory_encoding:    %.6f\n", out.MemoryEncoding)
	fmt.Fprintf(w, "verdict:            %s\n", out.Verdict)
	return nil
}

// neuralFromSlice maps the --neural flag onto the five channels.
// An empty flag means an all-zero vector.
func neuralFromSlice(values []float64) (energy.NeuralVector, error) {
	if len(values) == 0 {
		return energy.NeuralVector{}, nil
	}
	if len(values) != 5 {
		return energy.NeuralVector{}, fmt.Errorf("expected 5 channel values, got %d", len(values))
	}
	return energy.NeuralVector{
		Dopamine:   values[0],
		Serotonin:  values[1],
		Oxytocin:   values[2],
		Adrenaline: values[3],
		Cortisol:   values[4],
	}, nil
}
