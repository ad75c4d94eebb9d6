package cli

import (
	"github.com/roach88/gonogo/internal/policy"
)

// loadPolicy resolves the active policy: the file named by --policy, or
// the built-in profiles when the flag is empty.
func loadPolicy(opts *RootOptions) (*policy.Policy, error) {
	if opts.Policy == "" {
		return policy.Default(), nil
	}
	return policy.Load(opts.Policy)
}
