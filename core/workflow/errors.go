package workflow

import "errors"

var (
	ErrInvalidTransition      = errors.New("workflow has no pending step left to act on")
	ErrMalformedTierSet       = errors.New("malformed tier set")
	ErrInvalidAction          = errors.New("invalid workflow action")
	ErrEmptyActor             = errors.New("actor can't be empty")
	ErrRecordNotFound         = errors.New("record not found")
	ErrRecordIDEmptyParam     = errors.New("record id can't be empty")
	ErrUnknownModule          = errors.New("no workflow registered for module")
	ErrRecordAlreadySubmitted = errors.New("record already has an active workflow")
	ErrRecordNotRevised       = errors.New("only revised records can be resubmitted")
)
