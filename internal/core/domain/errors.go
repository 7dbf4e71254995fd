package domain

import "errors"

var (
	ErrInvalidParty = errors.New("invalid party selection")
	ErrAlreadyVoted = errors.New("user has already voted")
	ErrInternal     = errors.New("internal server error")
)
