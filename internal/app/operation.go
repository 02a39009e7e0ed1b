package app

import "time"

// Operation tracks one CLI command. Its ID is the UTC start time and appears
// in every log line the command writes. Mutating operations change the type
// system and trigger a snapshot when the app closes.
type Operation struct {
	ID         string
	Command    string
	Parameters string
	Status     string // "success" or "error"
	Mutating   bool
}

// NewOperation creates an operation for command started at now.
func NewOperation(command, parameters string, now time.Time) *Operation {
	return &Operation{
		ID:         now.UTC().Format("20060102T150405Z"),
		Command:    command,
		Parameters: parameters,
		Status:     "success",
	}
}

// MarkMutating records that the operation changes the type system.
func (op *Operation) MarkMutating() {
	op.Mutating = true
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = "error"
}

// Succeeded returns true unless Fail was called.
func (op *Operation) Succeeded() bool {
	return op.Status == "success"
}
