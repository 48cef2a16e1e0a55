package httpclient

// Outcome is how a request ended.
type Outcome int

const (
	// OutcomeSucceeded means a response was received and decoded.
	OutcomeSucceeded Outcome = iota
	// OutcomeRecovered means the request failed and the OnError hook
	// supplied a value instead.
	OutcomeRecovered
	// OutcomeFailed means the request failed without recovery.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeRecovered:
		return "recovered"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a request.
//
//	Succeeded: Response is set; Value holds the OnSuccess result if a hook ran.
//	Recovered: Err is set; Value holds the OnError result.
//	Failed:    Err is set.
type Result struct {
	Outcome  Outcome
	Response *Response
	Value    any
	Err      *Error

	hooked bool
}

func succeeded(resp *Response) *Result {
	return &Result{Outcome: OutcomeSucceeded, Response: resp}
}

func recovered(err *Error, value any) *Result {
	return &Result{Outcome: OutcomeRecovered, Response: err.Response, Value: value, Err: err, hooked: true}
}

func failed(err *Error) *Result {
	return &Result{Outcome: OutcomeFailed, Response: err.Response, Err: err}
}

// Hooked reports whether Value came from an OnSuccess or OnError hook.
func (r *Result) Hooked() bool {
	return r.hooked
}

// Payload returns what the caller asked for: the hook value when a hook ran,
// the response otherwise, and nil for a failure.
func (r *Result) Payload() any {
	switch {
	case r.hooked:
		return r.Value
	case r.Outcome == OutcomeSucceeded:
		return r.Response
	default:
		return nil
	}
}
