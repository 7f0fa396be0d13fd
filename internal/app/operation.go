package app

import "study-go/internal/database"

// Operation tracks a CLI command that may change stored data.
// Operations start in memory with ID=0; only mutating commands persist
// them, which gives them an auto-increment ID from the operations table.
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string
}

// NewOperation creates an in-memory operation that will finish as a success
// unless Fail is called.
func NewOperation(operation, parameters string) *Operation {
	return &Operation{
		Operation:  operation,
		Parameters: parameters,
		Status:     database.StatusSuccess,
	}
}

// Persisted returns true if this operation has been saved to the database.
func (op *Operation) Persisted() bool {
	return op.ID != 0
}

// Fail marks the operation as finished with an error.
func (op *Operation) Fail() {
	op.Status = database.StatusError
}
