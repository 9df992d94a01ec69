package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/personaguard/internal/model"
	"github.com/nao1215/personaguard/internal/proof"
)

var (
	// ErrLedgerNotFound means the ledger file does not exist and the
	// caller did not ask for it to be created.
	ErrLedgerNotFound = errors.New("ledger: database not found")

	// ErrProofNotFound means no proof with the given id is stored.
	ErrProofNotFound = errors.New("ledger: proof not found")

	// ErrUnknownStatus means a status transition named a value outside
	// the pending/verified/revoked set.
	ErrUnknownStatus = errors.New("ledger: unknown proof status")

	// ErrReportNotFound means no analysis report with the given id is
	// stored.
	ErrReportNotFound = errors.New("ledger: analysis report not found")
)

// Ledger provides SQLite-based storage for ownership proofs and analysis
// history.
//
// Design decision: one database file for all personas rather than a file
// per persona. Cross-persona queries (the whole point of the analyzer)
// stay cheap, and backup is a single file copy.
type Ledger struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Ledger behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default ledger options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Ledger in the specified directory.
// If CreateIfNotExists is false and no database exists, ErrLedgerNotFound
// is returned.
func Open(dir string, opts Options) (*Ledger, error) {
	dbPath := filepath.Join(dir, "personaguard.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLedgerNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check ledger path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	l := &Ledger{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := l.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return l, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// createTables creates the ledger schema if it doesn't exist.
func (l *Ledger) createTables() error {
	schema := `
	-- Proofs store signed ownership claims
	CREATE TABLE IF NOT EXISTS proofs (
		id TEXT PRIMARY KEY,
		persona_id TEXT NOT NULL,
		account TEXT NOT NULL,
		statement TEXT,
		digest TEXT NOT NULL,
		signature TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_proofs_persona ON proofs(persona_id);
	CREATE INDEX IF NOT EXISTS idx_proofs_status ON proofs(status);

	-- Analysis reports store complete analyzer output as JSON
	CREATE TABLE IF NOT EXISTS analysis_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		persona_count INTEGER NOT NULL,
		score INTEGER NOT NULL,
		grade TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON analysis_reports(timestamp);
	`

	_, err := l.db.ExecContext(context.Background(), schema)
	return err
}

// PutProof inserts or replaces a proof by id.
func (l *Ledger) PutProof(ctx context.Context, p *proof.Proof) error {
	query := `
	INSERT INTO proofs (id, persona_id, account, statement, digest, signature, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		persona_id = excluded.persona_id,
		account = excluded.account,
		statement = excluded.statement,
		digest = excluded.digest,
		signature = excluded.signature,
		status = excluded.status
	`

	_, err := l.db.ExecContext(ctx, query,
		p.ID,
		p.PersonaID,
		p.Account,
		p.Statement,
		p.Digest,
		p.Signature,
		p.Status,
		p.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to store proof: %w", err)
	}
	return nil
}

// GetProof retrieves a proof by id.
func (l *Ledger) GetProof(ctx context.Context, id string) (*proof.Proof, error) {
	query := `
	SELECT id, persona_id, account, statement, digest, signature, status, created_at
	FROM proofs
	WHERE id = ?
	`

	var p proof.Proof
	var createdAt string
	err := l.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.PersonaID,
		&p.Account,
		&p.Statement,
		&p.Digest,
		&p.Signature,
		&p.Status,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrProofNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proof: %w", err)
	}

	p.CreatedAt = parseTimestamp(createdAt)
	return &p, nil
}

// UpdateProofStatus transitions a proof to the given status.
func (l *Ledger) UpdateProofStatus(ctx context.Context, id, status string) error {
	switch status {
	case proof.StatusPending, proof.StatusVerified, proof.StatusRevoked:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	result, err := l.db.ExecContext(ctx, "UPDATE proofs SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update proof status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrProofNotFound, id)
	}
	return nil
}

// ListProofsByPersona retrieves all proofs for a persona, newest first.
func (l *Ledger) ListProofsByPersona(ctx context.Context, personaID string) ([]*proof.Proof, error) {
	query := `
	SELECT id, persona_id, account, statement, digest, signature, status, created_at
	FROM proofs
	WHERE persona_id = ?
	ORDER BY created_at DESC, id
	`

	rows, err := l.db.QueryContext(ctx, query, personaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proofs: %w", err)
	}
	defer rows.Close()

	var proofs []*proof.Proof
	for rows.Next() {
		var p proof.Proof
		var createdAt string
		if err := rows.Scan(
			&p.ID,
			&p.PersonaID,
			&p.Account,
			&p.Statement,
			&p.Digest,
			&p.Signature,
			&p.Status,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan proof: %w", err)
		}
		p.CreatedAt = parseTimestamp(createdAt)
		proofs = append(proofs, &p)
	}

	return proofs, rows.Err()
}

// SaveAnalysisReport saves a complete analysis report as JSON alongside its
// headline numbers for cheap history listing.
func (l *Ledger) SaveAnalysisReport(ctx context.Context, report *model.AnalysisReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO analysis_reports (persona_count, score, grade, report_json)
	VALUES (?, ?, ?, ?)
	`

	_, err = l.db.ExecContext(ctx, query,
		report.PersonaCount,
		report.Score.Score,
		report.Score.Grade,
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis report: %w", err)
	}
	return nil
}

// LatestAnalysisReport retrieves the most recent analysis report, or nil
// when none has been saved.
func (l *Ledger) LatestAnalysisReport(ctx context.Context) (*model.AnalysisReport, error) {
	query := `
	SELECT report_json FROM analysis_reports
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := l.db.QueryRowContext(ctx, query).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis report: %w", err)
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse analysis report: %w", err)
	}
	return &report, nil
}

// AnalysisReportByID retrieves a stored analysis report by its database
// id, as listed by AnalysisHistory.
func (l *Ledger) AnalysisReportByID(ctx context.Context, id int64) (*model.AnalysisReport, error) {
	query := `SELECT report_json FROM analysis_reports WHERE id = ?`

	var reportJSON string
	err := l.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrReportNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis report: %w", err)
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse analysis report: %w", err)
	}
	return &report, nil
}

// ReportSummary contains headline information about a stored analysis
// report without the full JSON payload.
type ReportSummary struct {
	// ID is the report's database id.
	ID int64

	// Timestamp is when the analysis ran.
	Timestamp time.Time

	// PersonaCount is the number of personas analyzed.
	PersonaCount int

	// Score is the overall 0-100 privacy score.
	Score int

	// Grade is the letter grade.
	Grade string
}

// AnalysisHistory retrieves report summaries, newest first.
func (l *Ledger) AnalysisHistory(ctx context.Context) ([]ReportSummary, error) {
	query := `
	SELECT id, timestamp, persona_count, score, grade
	FROM analysis_reports
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis history: %w", err)
	}
	defer rows.Close()

	var results []ReportSummary
	for rows.Next() {
		var summary ReportSummary
		var timestamp string
		if err := rows.Scan(&summary.ID, &timestamp, &summary.PersonaCount, &summary.Score, &summary.Grade); err != nil {
			return nil, fmt.Errorf("failed to scan report summary: %w", err)
		}
		summary.Timestamp = parseTimestamp(timestamp)
		results = append(results, summary)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending on
// configuration. Returns zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
