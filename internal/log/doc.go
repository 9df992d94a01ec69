// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard
// slog package.
//
// PersonaGuard handles exactly the data that must never end up in a log
// file: vault passphrases, Ed25519 seeds, and the private notes attached
// to personas. The SecureHandler masks these even in verbose mode, so a
// debug log shared in a bug report cannot leak the contents of a vault.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("vault opened",
//	    "passphrase", secret,  // masked
//	    "personas", 3,
//	)
//
//	slog.SetDefault(logger)
package log
