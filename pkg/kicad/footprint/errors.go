package footprint

import "fmt"

// SchemaError reports a sub-node that does not match the expected shape
// of a known construct. Path identifies the offending entity, for
// example "footprint.pad[3].drill".
type SchemaError struct {
	Path string
	Msg  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func schemaErrf(path, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// InvariantError reports a mutation that would leave an entity in an
// invalid state. The call is rejected before anything changes.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func invariantErrf(op, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
