package validator

// Validator accumulates the outcome of a chain of checks. Once a check fails,
// every following check is a no-op, so the first failure is the one reported.
type Validator struct {
	Valid  bool
	Reason string
	Err    error
}

func New() *Validator {
	return &Validator{
		Valid: true,
	}
}

// Fail marks the validator invalid with the given error. Later failures are ignored.
func (v *Validator) Fail(err error) bool {
	if !v.Valid {
		return false
	}
	v.Valid = false
	v.Err = err
	if err != nil {
		v.Reason = err.Error()
	}
	return false
}
