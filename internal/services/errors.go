package services

import "errors"

var (
	ErrConflict     = errors.New("subdomain is not unique")
	ErrForbidden    = errors.New("not authorized to administrate this journal")
	ErrNotFound     = errors.New("not found")
	ErrReservedSlug = errors.New("slug suffix is reserved for journal landing pages")
	ErrInvalidLogin = errors.New("invalid email or password")
	ErrEmailTaken   = errors.New("email is already registered")
	ErrNoSession    = errors.New("no active session")
)
