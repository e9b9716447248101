// Package services holds the application's business logic. Services take
// repositories, return *errors.AppError for anything a client should see, and
// log through the request-scoped logger.
package services

import "time"

// Clock returns the current time. Services use it instead of time.Now so
// scheduling can be tested at fixed instants.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
