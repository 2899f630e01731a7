// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including "task not found".
	Success = 0

	// UserError indicates bad arguments, flags, or an unknown command.
	UserError = 1

	// AuthError indicates an auth or configuration error.
	AuthError = 2

	// BackendError indicates a Google Tasks API or network error.
	BackendError = 3

	// StorageError indicates the task file could not be read or written.
	StorageError = 4
)
