package plan

// Plan identifies a subscription tier.
type Plan string

const (
	Free    Plan = "free"
	Premium Plan = "premium"
	Pro     Plan = "pro"
)

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	switch p {
	case Free, Premium, Pro:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (p Plan) String() string {
	return string(p)
}

// Parse converts a raw string into a Plan.
// Returns ErrUnknownPlan for anything outside the catalog.
func Parse(s string) (Plan, error) {
	p := Plan(s)
	if !p.Valid() {
		return "", ErrUnknownPlan
	}
	return p, nil
}
