// Package config provides configuration structures and utilities for
// PersonaGuard. It defines storage locations for the vault, key material,
// and ledger, plus report generation preferences.
package config
