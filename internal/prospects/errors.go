package prospects

import "fmt"

// InvalidEnumError is returned when a code read from a document does not map to any known
// value. It is fatal to the record being processed.
type InvalidEnumError struct {
	Kind  string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("unknown %s string: %q", e.Kind, e.Value)
}
