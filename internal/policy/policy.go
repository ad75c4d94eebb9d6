// Package policy is the band provider: it maps context labels to validated
// decision bands. Built-in profiles cover the standard operational
// contexts; additional policies load from YAML, validated against an
// embedded schema before any band reaches the gate.
package policy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/roach88/gonogo/internal/gate"
)

// DefaultContext is the profile used when a consumer explicitly opts into
// fallback via BandsOrDefault.
const DefaultContext = "default"

// ReadinessBands partitions the readiness axis for one context.
type ReadinessBands struct {
	AcceptMin   float64 `yaml:"accept_min"`
	AcceptMax   float64 `yaml:"accept_max"`
	CautionMin  float64 `yaml:"caution_min"`
	CautionMax  float64 `yaml:"caution_max"`
	RestrictMax float64 `yaml:"restrict_max"`
}

// Profile is one context's thresholds.
type Profile struct {
	Description string         `yaml:"description"`
	MaxDrift    float64        `yaml:"max_drift"`
	MaxEntropy  float64        `yaml:"max_entropy"`
	MaxVariance float64        `yaml:"max_variance"`
	Readiness   ReadinessBands `yaml:"readiness"`
}

// Policy is a named, versioned set of context profiles.
type Policy struct {
	Name     string             `yaml:"name"`
	Version  string             `yaml:"version"`
	Profiles map[string]Profile `yaml:"contexts"`
}

// UnknownContextError reports a lookup for a context the policy does not
// define.
type UnknownContextError struct {
	Context string
}

func (e *UnknownContextError) Error() string {
	return fmt.Sprintf("unknown context %q", e.Context)
}

// bands converts a profile into the gate's band representation.
func (p Profile) bands(context, version string) gate.DecisionBands {
	return gate.DecisionBands{
		Context:     context,
		Version:     version,
		MaxDrift:    p.MaxDrift,
		MaxEntropy:  p.MaxEntropy,
		MaxVariance: p.MaxVariance,
		RestrictMax: p.Readiness.RestrictMax,
		CautionMin:  p.Readiness.CautionMin,
		CautionMax:  p.Readiness.CautionMax,
		AcceptMin:   p.Readiness.AcceptMin,
		AcceptMax:   p.Readiness.AcceptMax,
	}
}

// Bands returns the validated decision bands for a context.
// Unknown contexts are an error; there is no implicit fallback.
func (p *Policy) Bands(context string) (gate.DecisionBands, error) {
	profile, ok := p.Profiles[context]
	if !ok {
		return gate.DecisionBands{}, &UnknownContextError{Context: context}
	}

	bands := profile.bands(context, p.Version)
	if err := bands.Validate(); err != nil {
		return gate.DecisionBands{}, err
	}
	return bands, nil
}

// BandsOrDefault returns the bands for a context, falling back to the
// default profile when the context is unknown. The fallback is the
// explicit opt-in path; callers wanting strict lookup use Bands.
func (p *Policy) BandsOrDefault(context string) (gate.DecisionBands, error) {
	bands, err := p.Bands(context)
	var unknown *UnknownContextError
	if err != nil {
		if !errors.As(err, &unknown) {
			return gate.DecisionBands{}, err
		}
		bands, err = p.Bands(DefaultContext)
		if err != nil {
			return gate.DecisionBands{}, err
		}
	}
	return bands, nil
}

// Contexts returns the policy's context labels in sorted order.
func (p *Policy) Contexts() []string {
	contexts := make([]string, 0, len(p.Profiles))
	for name := range p.Profiles {
		contexts = append(contexts, name)
	}
	sort.Strings(contexts)
	return contexts
}

// Validate checks every profile's bands.
func (p *Policy) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("policy has no name")
	}
	if len(p.Profiles) == 0 {
		return fmt.Errorf("policy %q defines no contexts", p.Name)
	}
	for _, context := range p.Contexts() {
		bands := p.Profiles[context].bands(context, p.Version)
		if err := bands.Validate(); err != nil {
			return fmt.Errorf("context %q: %w", context, err)
		}
	}
	return nil
}
