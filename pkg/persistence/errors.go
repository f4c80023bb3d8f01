package persistence

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRead reports a store that is missing, unreadable or not valid JSON.
	ErrRead = errors.New("failed to read bills")

	// ErrSchema reports a store whose content does not have the bill shape.
	ErrSchema = errors.New("malformed bills")

	// ErrWrite reports a store that could not be written.
	ErrWrite = errors.New("failed to write bills")
)

// SchemaError lists the records that were skipped or defaulted while
// loading. The bills that survived are still returned next to it.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchema, strings.Join(e.Problems, "; "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func (e *SchemaError) add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *SchemaError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}

	return e
}
