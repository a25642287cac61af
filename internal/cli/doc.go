// Package cli parses command-line arguments into an app.Config and owns
// process-level concerns like usage text and exit codes.
package cli
