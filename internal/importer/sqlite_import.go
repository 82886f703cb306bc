// Package importer merges evaluation history from other beaverbuild databases,
// typically ones exported from CI runners.
package importer

import (
	"database/sql"
	"fmt"
	"os"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"
)

// Result summarises a merge.
type Result struct {
	Imported int
	Skipped  int
}

const copyCols = `label, created_at, signing_kind, has_keystore, has_alias, has_password,
	keystore_path, key_alias, application_id, version_name, version_code, project_dir, descriptor, fingerprint`

// MergeDatabase copies every evaluation from srcPath into dst. Rows whose
// label, timestamp and fingerprint already exist in dst are skipped, so
// importing the same file twice is harmless.
func MergeDatabase(dst *sql.DB, srcPath string) (Result, error) {
	var res Result
	if _, err := os.Stat(srcPath); err != nil {
		return res, fmt.Errorf("open source: %w", err)
	}
	src, err := sql.Open("sqlite", "file:"+srcPath+"?mode=ro")
	if err != nil {
		return res, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = src.Close() }()

	rows, err := src.Query("SELECT " + copyCols + " FROM evaluations ORDER BY id ASC")
	if err != nil {
		return res, fmt.Errorf("read source evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	trx, err := dst.Begin()
	if err != nil {
		return res, err
	}
	defer func() { _ = trx.Rollback() }()

	for rows.Next() {
		var (
			label, created, kind, appID, desc, fp string
			ks, al, pw                            int
			path, alias, vname, projDir           sql.NullString
			vcode                                 sql.NullInt64
		)
		if err := rows.Scan(&label, &created, &kind, &ks, &al, &pw, &path, &alias, &appID, &vname, &vcode, &projDir, &desc, &fp); err != nil {
			return res, err
		}
		var n int
		if err := trx.QueryRow("SELECT count(*) FROM evaluations WHERE label = ? AND created_at = ? AND fingerprint = ?",
			label, created, fp).Scan(&n); err != nil {
			return res, err
		}
		if n > 0 {
			res.Skipped++
			continue
		}
		if _, err := trx.Exec("INSERT INTO evaluations ("+copyCols+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			label, created, kind, ks, al, pw, path, alias, appID, vname, vcode, projDir, desc, fp); err != nil {
			return res, fmt.Errorf("insert evaluation: %w", err)
		}
		res.Imported++
	}
	if err := rows.Err(); err != nil {
		return res, err
	}
	if err := trx.Commit(); err != nil {
		return Result{}, err
	}
	return res, nil
}
