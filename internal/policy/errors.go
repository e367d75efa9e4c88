package policy

import "errors"

// ErrPersist is returned when a policy mutation could not be written to
// durable storage. The in-memory mutation is kept regardless; callers must
// treat this as a configuration fault, not roll back the decision.
var ErrPersist = errors.New("policy persistence failed")
