// Package commands holds the screenctl cobra commands: the TUI itself plus
// a few introspection commands over the installed modules.
package commands
