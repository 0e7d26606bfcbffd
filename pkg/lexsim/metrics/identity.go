package metrics

import "github.com/cognicore/lexsim/pkg/lexsim/tokens"

// Identity scores 1 for equal strings and 0 otherwise. It is mostly useful
// to check pipeline wiring independently of any numeric algorithm.
type Identity struct{}

// Kind implements Metric.
func (Identity) Kind() tokens.Kind { return tokens.KindString }

// Compare implements Metric.
func (Identity) Compare(a, b string) (float64, error) {
	if a == b {
		return 1.0, nil
	}
	return 0.0, nil
}

// Distance implements Distance.
func (Identity) Distance(a, b string) (float64, error) {
	if a == b {
		return 0.0, nil
	}
	return 1.0, nil
}

func (Identity) String() string { return "Identity" }
