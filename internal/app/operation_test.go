package app

import (
	"testing"
	"time"
)

func TestNewOperation(t *testing.T) {
	start := time.Date(2024, 1, 15, 11, 30, 0, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name       string
		command    string
		parameters string
	}{
		{
			name:       "with parameters",
			command:    "CreateTypes",
			parameters: "types/invoice.yaml",
		},
		{
			name:    "empty parameters",
			command: "ListTypes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation(tt.command, tt.parameters, start)

			if op.ID != "20240115T103000Z" {
				t.Errorf("ID = %q, want %q", op.ID, "20240115T103000Z")
			}
			if op.Command != tt.command {
				t.Errorf("Command = %q, want %q", op.Command, tt.command)
			}
			if op.Parameters != tt.parameters {
				t.Errorf("Parameters = %q, want %q", op.Parameters, tt.parameters)
			}
			if !op.Succeeded() {
				t.Errorf("Status = %q, want %q", op.Status, "success")
			}
			if op.Mutating {
				t.Error("Mutating = true, want false")
			}
		})
	}
}

func TestOperation_StatusChanges(t *testing.T) {
	op := NewOperation("DeleteType", "custom:invoice", time.Now())
	op.MarkMutating()
	op.Fail()

	if !op.Mutating {
		t.Error("Mutating = false after MarkMutating()")
	}
	if op.Succeeded() || op.Status != "error" {
		t.Errorf("Status = %q after Fail(), want %q", op.Status, "error")
	}
}
