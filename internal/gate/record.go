package gate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Record renders the explainable record for a decision result.
//
// The record is the stable explainability contract external systems audit
// and log. Its top-level fields are fixed: verdict, metrics (six named
// numbers), rules, reason, protocol, context. Rendering is deterministic:
// field order is fixed, numbers are printed with three decimals, and
// strings are NFC-normalized, so re-rendering the same result yields
// byte-identical output.
//
// The record is derived from the DecisionResult alone; no additional
// lookups are performed.
func (r DecisionResult) Record() []byte {
	var buf bytes.Buffer

	buf.WriteString("{\n")
	fmt.Fprintf(&buf, "  \"verdict\": %s,\n", recordString(string(r.Verdict)))
	buf.WriteString("  \"metrics\": {\n")
	fmt.Fprintf(&buf, "    \"readiness\": %.3f,\n", r.Metrics.Readiness)
	fmt.Fprintf(&buf, "    \"entropy\": %.3f,\n", r.Metrics.Entropy)
	fmt.Fprintf(&buf, "    \"drift\": %.3f,\n", r.Metrics.Drift)
	fmt.Fprintf(&buf, "    \"safety\": %.3f,\n", r.Metrics.Safety)
	fmt.Fprintf(&buf, "    \"trend\": %.3f,\n", r.Metrics.Trend)
	fmt.Fprintf(&buf, "    \"variance\": %.3f\n", r.Metrics.Variance)
	buf.WriteString("  },\n")
	if r.RuleFail {
		buf.WriteString("  \"rules\": [\"failed\"],\n")
	} else {
		buf.WriteString("  \"rules\": [\"ok\"],\n")
	}
	fmt.Fprintf(&buf, "  \"reason\": %s,\n", recordString(r.PrimaryReason()))
	fmt.Fprintf(&buf, "  \"protocol\": %s,\n", recordString(r.Protocol))
	fmt.Fprintf(&buf, "  \"context\": %s\n", recordString(r.Context))
	buf.WriteString("}")

	return buf.Bytes()
}

// recordString renders a JSON string with NFC normalization and without
// HTML escaping, so records containing < > & survive byte-for-byte
// comparison across renders and platforms.
func recordString(s string) string {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a plain string cannot fail.
	_ = enc.Encode(normalized)

	out := buf.Bytes()
	// json.Encoder adds a trailing newline, remove it.
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return string(out)
}
