// Package history records descriptor evaluations in SQLite. Passwords are
// never stored.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/caresoft-ricent/beaverbuild/internal/descriptor"
	"github.com/caresoft-ricent/beaverbuild/internal/signing"
)

// ErrNotFound is returned when an evaluation id does not exist.
var ErrNotFound = errors.New("evaluation not found")

// Evaluation is one recorded run of the selector.
type Evaluation struct {
	ID            int64
	Label         string
	CreatedAt     string
	Kind          signing.Kind
	Presence      signing.Presence
	KeystorePath  sql.NullString
	KeyAlias      sql.NullString
	ApplicationID string
	VersionName   sql.NullString
	VersionCode   sql.NullInt64
	ProjectDir    sql.NullString
	Descriptor    string
	Fingerprint   string
}

// Entry is the input to Record.
type Entry struct {
	Label      string
	ProjectDir string
	Selection  signing.Selection
	Descriptor *descriptor.Descriptor
}

// Repository stores and lists evaluations.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the underlying DB connection used by the Repository.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Record stores e and returns the new evaluation id. The descriptor is
// stored redacted.
func (r *Repository) Record(e Entry) (int64, error) {
	label := SanitizeLabel(e.Label)
	if label == "" {
		label = DefaultLabel
	}
	if err := ValidateLabel(label); err != nil {
		return 0, err
	}
	if e.Descriptor == nil {
		return 0, fmt.Errorf("record evaluation: nil descriptor")
	}
	red := e.Descriptor.Redacted()
	body, err := json.Marshal(red)
	if err != nil {
		return 0, fmt.Errorf("marshal descriptor: %w", err)
	}
	fp, err := e.Descriptor.Fingerprint()
	if err != nil {
		return 0, fmt.Errorf("fingerprint: %w", err)
	}

	var path, alias sql.NullString
	if e.Selection.Release() {
		path = sql.NullString{String: e.Selection.Config.StoreFile, Valid: true}
		alias = sql.NullString{String: e.Selection.Config.KeyAlias, Valid: true}
	}
	res, err := r.db.Exec(`INSERT INTO evaluations
		(label, created_at, signing_kind, has_keystore, has_alias, has_password,
		 keystore_path, key_alias, application_id, version_name, version_code,
		 project_dir, descriptor, fingerprint)
		VALUES (?, datetime('now'), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		label, string(e.Selection.Config.Kind),
		boolInt(e.Selection.Presence.Keystore), boolInt(e.Selection.Presence.Alias), boolInt(e.Selection.Presence.Password),
		path, alias, red.ApplicationID, red.VersionName, red.VersionCode,
		nullString(e.ProjectDir), string(body), fp)
	if err != nil {
		return 0, fmt.Errorf("insert evaluation: %w", err)
	}
	return res.LastInsertId()
}

const selectCols = `SELECT id, label, created_at, signing_kind, has_keystore, has_alias, has_password,
	keystore_path, key_alias, application_id, version_name, version_code, project_dir, descriptor, fingerprint
	FROM evaluations`

// List returns the most recent evaluations, newest first. limit <= 0
// returns all of them.
func (r *Repository) List(limit int) ([]Evaluation, error) {
	q := selectCols + " ORDER BY id DESC"
	var args []interface{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	return out, rows.Err()
}

// Get returns the evaluation with the given id.
func (r *Repository) Get(id int64) (*Evaluation, error) {
	ev, err := scanEvaluation(r.db.QueryRow(selectCols+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return ev, err
}

// Latest returns the newest evaluation, or ErrNotFound when none exist.
func (r *Repository) Latest() (*Evaluation, error) {
	ev, err := scanEvaluation(r.db.QueryRow(selectCols + " ORDER BY id DESC LIMIT 1"))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ev, err
}

// Clear deletes every evaluation and returns how many were removed.
func (r *Repository) Clear() (int64, error) {
	res, err := r.db.Exec("DELETE FROM evaluations")
	if err != nil {
		return 0, fmt.Errorf("clear evaluations: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvaluation(s scanner) (*Evaluation, error) {
	var ev Evaluation
	var kind string
	var ks, al, pw int
	if err := s.Scan(&ev.ID, &ev.Label, &ev.CreatedAt, &kind, &ks, &al, &pw,
		&ev.KeystorePath, &ev.KeyAlias, &ev.ApplicationID, &ev.VersionName, &ev.VersionCode,
		&ev.ProjectDir, &ev.Descriptor, &ev.Fingerprint); err != nil {
		return nil, err
	}
	ev.Kind = signing.Kind(kind)
	ev.Presence = signing.Presence{Keystore: ks != 0, Alias: al != 0, Password: pw != 0}
	return &ev, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
