package errs

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrAlreadyExists  = errors.New("record already exists")
	ErrKeyExpired     = errors.New("verification key expired")
)
