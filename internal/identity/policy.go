package identity

import "fmt"

// Policy decides what the gateway does with a verified subject that has no
// user record. Exactly one policy is active per deployment; the two are never
// mixed.
type Policy int

const (
	// PolicyStrict rejects unknown subjects and tells them to register.
	PolicyStrict Policy = iota
	// PolicyAutoProvision inserts a placeholder record and lets the
	// request proceed.
	PolicyAutoProvision
)

func (p Policy) String() string {
	switch p {
	case PolicyAutoProvision:
		return "auto"
	default:
		return "strict"
	}
}

// ParsePolicy resolves the configured policy name once at startup.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "strict":
		return PolicyStrict, nil
	case "auto", "auto-provision":
		return PolicyAutoProvision, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown provision policy %q", s)
	}
}
