package model

// FormErrorKey is the FieldErrors key for errors not tied to a single field.
const FormErrorKey = "_form"

// FieldErrors maps a field name to its violation messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// FormState is the outcome of a mutation. Either Success and Message are set,
// or Errors is non-empty; never both.
type FormState struct {
	Success bool        `json:"success,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

// Succeeded returns a successful state carrying message.
func Succeeded(message string) FormState {
	return FormState{Success: true, Message: message}
}

// Invalid returns a failed state carrying field errors.
func Invalid(errs FieldErrors) FormState {
	return FormState{Errors: errs}
}

// FieldError returns a failed state with a single message on field.
func FieldError(field, message string) FormState {
	return FormState{Errors: FieldErrors{field: {message}}}
}

// FormError returns a failed state with a form-level message.
func FormError(message string) FormState {
	return FieldError(FormErrorKey, message)
}

// FormErrors returns the form-level messages, if any.
func (s FormState) FormErrors() []string {
	return s.Errors[FormErrorKey]
}
