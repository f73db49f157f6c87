// Package cli turns the verton command line into an app.Config. Usage
// problems surface as an ExitError with code 2 before the app starts.
package cli
