package booking

import (
	"errors"
	"fmt"
)

// ErrAborted marks a booking that stopped before any store was touched;
// callers report it to the guest rather than treating it as a failure.
var ErrAborted = errors.New("booking aborted")

type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
