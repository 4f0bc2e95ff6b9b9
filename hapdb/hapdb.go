// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hapdb holds types to describe the waveform pattern library
// database for DA728x haptics devices.
//
// The library database stores named pattern-memory images, grouped in
// versioned libraries, so a fleet of devices can be (re)programmed
// with a consistent set of haptic effects.
package hapdb // import "github.com/go-hap/hap/hapdb"

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const (
	host = "localhost"
)

var (
	usr = "username"
	pwd = "s3cr3t"

	drvName = "mysql"
)

// DB exposes convenience methods to easily retrieve pattern libraries
// and waveform patterns from the haptics database.
type DB struct {
	db   *sql.DB
	name string // name of the haptics database
}

// Open opens a connection to the haptics database dbname.
func Open(dbname string) (*DB, error) {
	db, err := sql.Open(drvName, dsn(dbname))
	if err != nil {
		return nil, fmt.Errorf("hapdb: could not open %q db: %w", dbname, err)
	}

	err = ping(db, dbname)
	if err != nil {
		return nil, fmt.Errorf("hapdb: could not ping %q db: %w", dbname, err)
	}

	return &DB{db: db, name: dbname}, nil
}

func dsn(db string) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s", usr, pwd, host, db)
}

func ping(db *sql.DB, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("hapdb: could not ping %q db: %w", dbname, err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// LastLibrary returns the name of the most recent pattern library.
func (db *DB) LastLibrary(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	lib := ""
	rows, err := db.db.QueryContext(
		ctx,
		"SELECT name FROM libraries ORDER BY datetime DESC LIMIT 1",
	)
	if err != nil {
		return lib, fmt.Errorf("hapdb: could not query last library: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		err = rows.Scan(&lib)
		if err != nil {
			return lib, fmt.Errorf("hapdb: could not get library name: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return lib, fmt.Errorf("hapdb: could not scan db for last library: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return lib, fmt.Errorf("hapdb: context error while retrieving last library: %w", err)
	}

	return lib, nil
}

// Patterns returns the waveform patterns of the named library.
func (db *DB) Patterns(ctx context.Context, library string) ([]Pattern, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pats []Pattern
	rows, err := db.db.QueryContext(
		ctx,
		`
SELECT patterns.identifier, patterns.name, patterns.seqid, patterns.image
FROM patterns
JOIN libraries ON libraries.identifier=patterns.library
WHERE libraries.name=?
`,
		library,
	)
	if err != nil {
		return pats, fmt.Errorf("hapdb: could not run patterns query: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var pat Pattern
		err = rows.Scan(&pat.PrimaryID, &pat.Name, &pat.SeqID, &pat.Image)
		if err != nil {
			return pats, fmt.Errorf("hapdb: could not scan row %d for patterns: %w", i, err)
		}
		i++

		pats = append(pats, pat)
	}

	if err := rows.Err(); err != nil {
		return pats, fmt.Errorf("hapdb: could not scan db for patterns: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return pats, fmt.Errorf("hapdb: context error while retrieving patterns: %w", err)
	}

	return pats, nil
}

// Pattern returns the named waveform pattern of the given library.
func (db *DB) Pattern(ctx context.Context, library, name string) (Pattern, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pat Pattern
	rows, err := db.db.QueryContext(
		ctx,
		`
SELECT patterns.identifier, patterns.name, patterns.seqid, patterns.image
FROM patterns
JOIN libraries ON libraries.identifier=patterns.library
WHERE (
	libraries.name=? AND patterns.name=?
)
`,
		library, name,
	)
	if err != nil {
		return pat, fmt.Errorf("hapdb: could not run pattern query: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		err = rows.Scan(&pat.PrimaryID, &pat.Name, &pat.SeqID, &pat.Image)
		if err != nil {
			return pat, fmt.Errorf("hapdb: could not scan pattern %q: %w", name, err)
		}
		n++
	}

	if err := rows.Err(); err != nil {
		return pat, fmt.Errorf("hapdb: could not scan db for pattern %q: %w", name, err)
	}

	if err := ctx.Err(); err != nil {
		return pat, fmt.Errorf("hapdb: context error while retrieving pattern %q: %w", name, err)
	}

	if n == 0 {
		return pat, fmt.Errorf("hapdb: no pattern %q in library %q", name, library)
	}

	return pat, nil
}
