package system

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotImplemented  = errors.New("not implemented")
)

// ArgumentError reports a time field outside its calendar range.
type ArgumentError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s must be an integer between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// validateTime checks each field against its calendar range. Month length
// and leap years are left to the device.
func validateTime(month, day, hour, minute, second int) error {
	checks := []ArgumentError{
		{Field: "month", Value: month, Min: 1, Max: 12},
		{Field: "day", Value: day, Min: 1, Max: 31},
		{Field: "hour", Value: hour, Min: 0, Max: 23},
		{Field: "minute", Value: minute, Min: 0, Max: 59},
		{Field: "second", Value: second, Min: 0, Max: 59},
	}
	for i := range checks {
		c := checks[i]
		if c.Value < c.Min || c.Value > c.Max {
			return &c
		}
	}
	return nil
}
