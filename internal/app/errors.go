package app

import (
	"github.com/khrees2412/takecare-ats/internal/database"
	"github.com/khrees2412/takecare-ats/internal/lifecycle"
	"github.com/khrees2412/takecare-ats/internal/tracker"
)

// Sentinel errors for common application errors
var (
	ErrNotFound        = database.ErrNotFound
	ErrAlreadyExists   = database.ErrDuplicate
	ErrInvalidArgument = tracker.ErrInvalidArgument
	ErrUnauthorized    = tracker.ErrUnauthorized
	ErrForbidden       = tracker.ErrForbidden
	ErrMissingSRConfig = lifecycle.ErrMissingSRConfig
)
