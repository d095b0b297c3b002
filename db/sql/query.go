package sql

import (
	"fmt"
	"strings"
)

type (
	// QueryFunction is a Query that reads data by calling a SQL function.
	QueryFunction struct {
		name string
		cols []string
		args []interface{}
	}

	// ExecFunction is a Query that changes data by calling a SQL function.
	ExecFunction struct {
		name string
		args []interface{}
	}

	// RawQuery is a Query with no arguments, used for setup statements.
	RawQuery string
)

// NewQueryFunction creates a Query to call a query function.
func NewQueryFunction(name string, cols []string, args ...interface{}) QueryFunction {
	q := QueryFunction{
		name: name,
		cols: cols,
		args: args,
	}
	return q
}

// NewExecFunction creates a Query to call an exec function.
func NewExecFunction(name string, args ...interface{}) ExecFunction {
	e := ExecFunction{
		name: name,
		args: args,
	}
	return e
}

// argPlaceholders creates the positional argument placeholders for n arguments.
func argPlaceholders(n int) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(placeholders, ", ")
}

// Cmd returns a SQL string to select the columns from the query function.
func (q QueryFunction) Cmd() string {
	return fmt.Sprintf("SELECT %s FROM %s(%s)", strings.Join(q.cols, ", "), q.name, argPlaceholders(len(q.args)))
}

// Args returns the arguments for the query function.
func (q QueryFunction) Args() []interface{} {
	return q.args
}

// Cmd returns a SQL string to call the exec function.
func (e ExecFunction) Cmd() string {
	return fmt.Sprintf("SELECT %s(%s)", e.name, argPlaceholders(len(e.args)))
}

// Args returns the arguments for the exec function.
func (e ExecFunction) Args() []interface{} {
	return e.args
}

// Cmd returns the raw SQL query.
func (r RawQuery) Cmd() string {
	return string(r)
}

// Args returns nil for the raw SQL query.
func (RawQuery) Args() []interface{} {
	return nil
}
