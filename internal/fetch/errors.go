package fetch

import "fmt"

// StatusError reports a non-success HTTP status. It is internal to the
// retry loop; callers of Fetch only ever see the boolean outcome.
type StatusError struct {
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d", e.Code)
}
