// Package ledger provides SQLite-based storage for PersonaGuard.
//
// This package implements the Ledger, which stores:
//   - Signed ownership proofs with their verification status
//   - Analysis reports for historical comparison
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package ledger
