package domain

import "time"

// QueryResult is what a consumer sees for one cached resource: the value (or
// its absence) plus loading and error flags. Raw errors never cross this
// boundary.
type QueryResult[T any] struct {
	Data      T
	Found     bool
	Loading   bool
	Error     bool
	UpdatedAt time.Time
}
