package queue

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrInvalidTransition  = errors.New("invalid ticket transition")
)
