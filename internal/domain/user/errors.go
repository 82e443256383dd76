package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrValidatorRequired  = errors.New("rrhh or admin role required")
	ErrOwnRecordsOnly     = errors.New("empleado callers may only access their own records")
	ErrCallerNotEmployee  = errors.New("caller has no employee identity")
	ErrUnknownRole        = errors.New("unknown role")
)
