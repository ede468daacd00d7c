package media

import "errors"

var (
	// ErrNoMedia is returned when an operation needs a populated media slot
	// and the entity has none.
	ErrNoMedia = errors.New("no media attached")

	// ErrUploadFailed wraps the per-size store errors after the succeeded
	// part of the batch has been compensated.
	ErrUploadFailed = errors.New("variant upload failed")

	// ErrPersistFailed wraps a ledger write error after a successful upload.
	// The just-uploaded objects are deleted before this is returned.
	ErrPersistFailed = errors.New("variant persist failed")
)
