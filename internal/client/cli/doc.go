// Package cli provides the interactive conference portal client.
//
// It wires configuration, the local session cache, the REST client, the
// role resolver, navigation and the screens into a REPL. The prompt shows
// who is logged in and the current view; "help" lists the commands of that
// view and "go <view>" switches views, loading the target's data.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// stdin is closed.
package cli
