package mapping

import "fmt"

// ConfigurationError reports an invalid mapping configuration. The caller
// must fix the configuration before retrying; it is never retried
// automatically.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Msg
}

// InputError reports malformed engine input: duplicate slot rows, or an
// aggregate store keyed by empty or duplicate question IDs. The run aborts
// with no partial output.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return "input error: " + e.Msg
}

// OutOfRangeError reports a write target outside the template's slot
// range. It aborts the write stage only; the computed decisions remain
// valid and reportable.
type OutOfRangeError struct {
	RowIndex int
	Rows     int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("row index %d out of range (template has %d rows)", e.RowIndex, e.Rows)
}
