/*
 * store.go, part of gosasa.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */


// Package store keeps the results of SASA calculations in a SQLite database,
// so runs can be listed and compared later.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	sasa "github.com/rmera/gosasa"
	"github.com/rmera/gosasa/sphere"
	"github.com/rmera/gosasa/store/migrations"
)

// ErrNotFound is returned when a run doesn't exist.
var ErrNotFound = errors.New("run not found")

// RunMeta describes the input of a calculation.
type RunMeta struct {
	Input   string
	Options *sasa.Options
}

// Run is a stored calculation.
type Run struct {
	ID            string
	Input         string
	CreatedAt     time.Time
	ProbeRadius   float64
	NPoints       int
	IncludeHetatm bool
	AltLocPrimary string
	Reference     string
	SphereVersion string
	Total         float64
	Atoms         int
	Residues      int
	Chains        int
}

// Store is a run database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the database at path, creating it if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}
	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}
	var up []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			up = append(up, e.Name())
		}
	}
	sort.Strings(up)
	for _, name := range up {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// Save stores the residue and chain tables of rep, and returns the
// identifier of the new run. Either the whole report is stored, or nothing.
func (s *Store) Save(ctx context.Context, meta RunMeta, rep *sasa.Report) (string, error) {
	o := meta.Options
	if o == nil {
		o = sasa.DefaultOptions()
	}
	id := uuid.New().String()
	sum := rep.Summary()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, input, created_at, probe_radius, n_points, include_hetatm, alt_loc_primary,
			reference_table, sphere_version, total_sasa, atoms, residues, chains)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, meta.Input, time.Now().UTC(), o.Probe(), o.NPoints(), o.HetAtoms(), o.AltLocPrimary(),
		rep.Reference(), sphere.Version, sum.Total, sum.Atoms, sum.Residues, sum.Chains)
	if err != nil {
		return "", fmt.Errorf("saving run: %w", err)
	}

	rstmt, err := tx.PrepareContext(ctx, `
		INSERT INTO residue_areas (run_id, position, chain, residue_num, icode, residue, abs_sasa, rel_sasa)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", err
	}
	defer rstmt.Close()
	for i, r := range rep.Residues() {
		var rel sql.NullFloat64
		if r.Relative != nil {
			rel = sql.NullFloat64{Float64: *r.Relative, Valid: true}
		}
		if _, err := rstmt.ExecContext(ctx, id, i, r.Chain, r.ResidueSeq, r.ICode, r.ResidueType, r.SASA, rel); err != nil {
			return "", fmt.Errorf("saving residue %s:%d: %w", r.Chain, r.ResidueSeq, err)
		}
	}
	for i, c := range rep.Chains() {
		if _, err := tx.ExecContext(ctx, "INSERT INTO chain_areas (run_id, position, chain, abs_sasa) VALUES (?, ?, ?, ?)",
			id, i, c.Chain, c.SASA); err != nil {
			return "", fmt.Errorf("saving chain %s: %w", c.Chain, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

const runColumns = `id, input, created_at, probe_radius, n_points, include_hetatm, alt_loc_primary,
	reference_table, sphere_version, total_sasa, atoms, residues, chains`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	r := new(Run)
	err := row.Scan(&r.ID, &r.Input, &r.CreatedAt, &r.ProbeRadius, &r.NPoints, &r.IncludeHetatm, &r.AltLocPrimary,
		&r.Reference, &r.SphereVersion, &r.Total, &r.Atoms, &r.Residues, &r.Chains)
	return r, err
}

// Runs returns all the stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+runColumns+" FROM runs ORDER BY rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()
	var ret []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

// Get returns the run with the given identifier. A unique prefix of the
// identifier is also accepted.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ? OR id LIKE ? LIMIT 2", id, id+"%")
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}
	defer rows.Close()
	var found []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.ID == id {
			return r, nil
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return found[0], nil
	}
	return nil, fmt.Errorf("run prefix %q is ambiguous", id)
}

// Residues returns the residue table of a run.
func (s *Store) Residues(ctx context.Context, id string) ([]sasa.ResidueRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chain, residue_num, icode, residue, abs_sasa, rel_sasa
		FROM residue_areas WHERE run_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("getting residues: %w", err)
	}
	defer rows.Close()
	var ret []sasa.ResidueRow
	for rows.Next() {
		var r sasa.ResidueRow
		var rel sql.NullFloat64
		if err := rows.Scan(&r.Chain, &r.ResidueSeq, &r.ICode, &r.ResidueType, &r.SASA, &rel); err != nil {
			return nil, fmt.Errorf("scanning residue: %w", err)
		}
		if rel.Valid {
			v := rel.Float64
			r.Relative = &v
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

// Chains returns the chain table of a run.
func (s *Store) Chains(ctx context.Context, id string) ([]sasa.ChainRow, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT chain, abs_sasa FROM chain_areas WHERE run_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("getting chains: %w", err)
	}
	defer rows.Close()
	var ret []sasa.ChainRow
	for rows.Next() {
		var c sasa.ChainRow
		if err := rows.Scan(&c.Chain, &c.SASA); err != nil {
			return nil, fmt.Errorf("scanning chain: %w", err)
		}
		ret = append(ret, c)
	}
	return ret, rows.Err()
}

// Delete removes a run and its tables.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
