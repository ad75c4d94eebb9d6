package policy

// Default returns the built-in policy with the four standard context
// profiles. The thresholds are deliberately conservative for physical and
// financial contexts and looser for conversational output.
func Default() *Policy {
	return &Policy{
		Name:    "CORE-9_DECISION_GATE",
		Version: "v1.0",
		Profiles: map[string]Profile{
			"default": {
				Description: "Baseline thresholds for unclassified contexts.",
				MaxDrift:    0.35,
				MaxEntropy:  0.62,
				MaxVariance: 8.0,
				Readiness: ReadinessBands{
					AcceptMin:   30.0,
					AcceptMax:   80.0,
					CautionMin:  15.0,
					CautionMax:  30.0,
					RestrictMax: 15.0,
				},
			},
			"robot_control": {
				Description: "Physical actuation context. Conservative thresholds. Human safety first.",
				MaxDrift:    0.35,
				MaxEntropy:  0.62,
				MaxVariance: 8.0,
				Readiness: ReadinessBands{
					AcceptMin:   30.0,
					AcceptMax:   80.0,
					CautionMin:  15.0,
					CautionMax:  30.0,
					RestrictMax: 15.0,
				},
			},
			"chat": {
				Description: "Conversational output context. Higher tolerance than physical systems.",
				MaxDrift:    0.45,
				MaxEntropy:  0.75,
				MaxVariance: 12.0,
				Readiness: ReadinessBands{
					AcceptMin:   25.0,
					AcceptMax:   85.0,
					CautionMin:  10.0,
					CautionMax:  25.0,
					RestrictMax: 10.0,
				},
			},
			"finance": {
				Description: "High-risk decision context. Extremely conservative.",
				MaxDrift:    0.25,
				MaxEntropy:  0.55,
				MaxVariance: 5.0,
				Readiness: ReadinessBands{
					AcceptMin:   40.0,
					AcceptMax:   90.0,
					CautionMin:  25.0,
					CautionMax:  40.0,
					RestrictMax: 25.0,
				},
			},
		},
	}
}
