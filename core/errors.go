package core

// MissingFieldError reports a required JobConfig field that was left
// empty. This is a configuration bug on the caller's side, not a
// condition to recover from.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "jobscript: missing required field: " + e.Field
}

// TemplateError wraps a parse or execute failure in a user-supplied
// script skeleton.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string {
	return "jobscript: bad skeleton: " + e.Err.Error()
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}
