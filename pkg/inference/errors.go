package inference

import "errors"

// InputError marks a request that was rejected before any collaborator call:
// missing body, unparsable identifier, or an encounter that cannot be aligned
// to the model schema.
type InputError struct {
	reason error
}

func (e InputError) Error() string {
	return e.reason.Error()
}

func (e InputError) Unwrap() error {
	return e.reason
}

func IsInputError(err error) bool {
	var ie InputError
	return errors.As(err, &ie)
}

func inputErr(reason error) error {
	return InputError{reason: reason}
}

// CollaboratorError marks a failure of an external dependency (classifier or
// patient store). The core never retries these; surfacing them is the
// transport layer's job.
type CollaboratorError struct {
	reason error
}

func (e CollaboratorError) Error() string {
	return e.reason.Error()
}

func (e CollaboratorError) Unwrap() error {
	return e.reason
}

func IsCollaboratorError(err error) bool {
	var ce CollaboratorError
	return errors.As(err, &ce)
}

func collaboratorErr(reason error) error {
	return CollaboratorError{reason: reason}
}
