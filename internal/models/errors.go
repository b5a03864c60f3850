package models

import "errors"

// Sentinel errors surfaced by the model layer. Handlers match them
// with errors.Is and reuse the messages in API payloads.
var (
	ErrUserNotFound      = errors.New("user does not exist")
	ErrWrongPassword     = errors.New("wrong password")
	ErrInvalidAssignment = errors.New("this user is not a member of this project")
	ErrDuplicateMember   = errors.New("this user is already a member of this project")
	ErrDuplicateTitle    = errors.New("a task with this title already exists")
)
