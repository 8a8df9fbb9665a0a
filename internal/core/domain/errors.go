package domain

import "errors"

var ErrInvalidID = errors.New("invalid identifier")
var ErrBookNotFound = errors.New("book not found")
var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateBook = errors.New("book already exists")
var ErrEmailTaken = errors.New("email already in use")
var ErrLimitTooLarge = errors.New("limit cannot exceed 200")

// ErrInconsistentRead signals that a document inserted a moment ago could not
// be read back. This is unreachable under normal store behaviour and is never
// retried.
var ErrInconsistentRead = errors.New("inserted document could not be read back")
