package main

// Default limits for CLI commands.
const (
	DefaultQueryLimit = 10
	DefaultListLimit  = 50
)

// Valid transcript formats for extraction.
var validFormats = []string{"json", "text", "auto"}
