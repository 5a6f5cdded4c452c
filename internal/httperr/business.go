package httperr

import "errors"

// BusinessError carries a machine-readable code through the use-case
// layer; handlers translate codes into HTTP responses.
//
// Core codes: malformed_time, invalid_duration, slot_conflict,
// persistence_failed, illegal_transition.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
