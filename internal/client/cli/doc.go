// Package cli provides the interactive MindMate command-line client.
//
// It wires configuration, the local session store, the authenticated HTTP
// client and the auth services into a small REPL. The REPL keeps a "current
// page"; opening a page runs the page-load gate, which sends the user back to
// /login when the server no longer accepts the stored token. A background
// watcher repeats that check while the user stays on a protected page.
//
// Commands:
//   - register / login / logout
//   - open <path>  move to a page
//   - get <path>   authenticated GET, prints status and body
//   - check        ask the server whether the session is valid
//   - whoami       print the stored identity
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
