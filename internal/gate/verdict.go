package gate

// Verdict is the go/no-go outcome of a gate evaluation.
type Verdict string

const (
	// VerdictAllow admits the downstream action.
	VerdictAllow Verdict = "ALLOW"

	// VerdictReview flags the action for human or supervisory review.
	VerdictReview Verdict = "REVIEW"

	// VerdictBlock denies the action.
	VerdictBlock Verdict = "BLOCK"
)

// Valid reports whether v is one of the three defined verdicts.
func (v Verdict) Valid() bool {
	return v == VerdictAllow || v == VerdictReview || v == VerdictBlock
}
