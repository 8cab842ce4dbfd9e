package reminder

import "errors"

var (
	ErrInvalidThresholds    = errors.New("invalid threshold table")
	ErrInvalidInput         = errors.New("invalid date input")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrDocumentIDEmptyParam = errors.New("document id can't be empty")
)
