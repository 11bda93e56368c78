package semantic

import "github.com/voltadb/volta"

// A ColumnDef names one row column and its type.
type ColumnDef struct {
	Name string
	Type volta.ValueType
}

// A Result is the outcome of validating one statement.  Inputs are the
// columns the statement consumes from an upstream pipe or variable binding;
// Outputs are the columns it hands downstream.  Success is false iff Errors
// is non-empty.
type Result struct {
	Success bool
	Inputs  []ColumnDef
	Outputs []ColumnDef
	Errors  []Error
}

// Failure builds a failed Result from one or more errors.
func Failure(errs ...Error) *Result {
	return &Result{Errors: errs}
}

func success(inputs, outputs []ColumnDef) *Result {
	return &Result{Success: true, Inputs: inputs, Outputs: outputs}
}
