// Package repository implements data access against MySQL.  This file
// defines sentinel errors shared across repositories so handlers can
// map failure scenarios to HTTP statuses without string matching.
package repository

import "errors"

// ErrExcursionNotFound is returned when an excursion does not exist or
// is not visible to the caller.  Handlers translate this into HTTP 404.
var ErrExcursionNotFound = errors.New("excursion not found")

// ErrBookingNotFound is returned when a booking does not exist or does
// not belong to the requesting client.
var ErrBookingNotFound = errors.New("booking not found")
