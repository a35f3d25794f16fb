package domain

// Outcome is the result of one chart source attempt. It is either a
// Success or a Failure.
type Outcome interface {
	outcome()
}

// Success carries a normalized chart.
type Success struct {
	Chart ChartResult
}

// Failure carries a short human-readable reason and the underlying error.
type Failure struct {
	Reason string
	Err    error
}

func (Success) outcome() {}
func (Failure) outcome() {}

// Fail builds a Failure from an error, using the error text as reason.
func Fail(err error) Failure {
	return Failure{Reason: err.Error(), Err: err}
}

func (f Failure) Error() string {
	if f.Reason != "" {
		return f.Reason
	}
	if f.Err != nil {
		return f.Err.Error()
	}
	return "unknown failure"
}

func (f Failure) Unwrap() error { return f.Err }
