// Package console provides styled terminal output for the rentwizard
// CLI subcommands that are not full-screen TUIs: command headers,
// success and error result boxes, and terminal size detection.
package console
