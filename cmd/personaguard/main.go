// Package main provides the entry point for the PersonaGuard CLI.
//
// PersonaGuard manages separated online personas and analyzes them for
// privacy leaks: shared accounts, similar usernames, and correlatable
// metadata that could link personas to one real-world identity.
//
// Usage:
//
//	personaguard create <name>
//	personaguard connect <persona> <platform:handle>
//	personaguard analyze
//
// See --help for all available options.
package main

// main is the entry point for PersonaGuard.
func main() {
	Execute()
}
