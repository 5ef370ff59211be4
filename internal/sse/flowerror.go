package sse

// FlowError tells a streaming loop whether it can continue after a failed
// emit. Next is false when the client connection is gone.
type FlowError struct {
	Err  error
	Next bool
}

func (e *FlowError) Error() string {
	return e.Err.Error()
}

func NewFlowError(err error, next bool) *FlowError {
	return &FlowError{
		Err:  err,
		Next: next,
	}
}
