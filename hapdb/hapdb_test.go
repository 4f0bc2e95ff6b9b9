// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hapdb

import (
	"context"
	"database/sql/driver"
	"reflect"
	"strings"
	"testing"

	"github.com/go-hap/hap/internal/fakedb"
)

func init() {
	drvName = "fakedb"
}

func TestOpen(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open hapdb: %+v", err)
	}
	defer db.Close()
}

func TestLastLibrary(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open hapdb: %+v", err)
	}
	defer db.Close()

	_ = fakedb.Run(context.Background(), fakedb.Rows{
		Names: []string{"name"},
		Values: [][]driver.Value{
			{"HAP2024_1"},
		},
	}, func(ctx context.Context) error {
		lib, err := db.LastLibrary(ctx)
		if err != nil {
			t.Fatalf("could not retrieve last library: %+v", err)
		}

		if got, want := lib, "HAP2024_1"; got != want {
			t.Fatalf("invalid last library: got=%q, want=%q", got, want)
		}
		return nil
	})
}

func TestPatterns(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open hapdb: %+v", err)
	}
	defer db.Close()

	_ = fakedb.Run(context.Background(), fakedb.Rows{
		Names: []string{"identifier", "name", "seqid", "image"},
		Values: [][]driver.Value{
			{int32(1), "click", uint8(0), []byte{0x01, 0x01, 0x05, 0x06, 0x8F, 0x80, 0x61}},
			{int32(2), "buzz", uint8(1), []byte{0x01, 0x01, 0x05, 0x06, 0x8F, 0x80, 0x62}},
		},
	}, func(ctx context.Context) error {
		pats, err := db.Patterns(ctx, "HAP2024_1")
		if err != nil {
			t.Fatalf("could not retrieve patterns: %+v", err)
		}

		want := []Pattern{
			{PrimaryID: 1, Name: "click", SeqID: 0, Image: []byte{0x01, 0x01, 0x05, 0x06, 0x8F, 0x80, 0x61}},
			{PrimaryID: 2, Name: "buzz", SeqID: 1, Image: []byte{0x01, 0x01, 0x05, 0x06, 0x8F, 0x80, 0x62}},
		}
		if !reflect.DeepEqual(pats, want) {
			t.Fatalf("invalid patterns:\ngot= %#v\nwant=%#v", pats, want)
		}
		return nil
	})
}

func TestPattern(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open hapdb: %+v", err)
	}
	defer db.Close()

	_ = fakedb.Run(context.Background(), fakedb.Rows{
		Names: []string{"identifier", "name", "seqid", "image"},
		Values: [][]driver.Value{
			{int32(1), "click", uint8(0), []byte{0x01, 0x01, 0x05, 0x06, 0x8F, 0x80, 0x61}},
		},
	}, func(ctx context.Context) error {
		pat, err := db.Pattern(ctx, "HAP2024_1", "click")
		if err != nil {
			t.Fatalf("could not retrieve pattern: %+v", err)
		}
		if got, want := pat.Name, "click"; got != want {
			t.Fatalf("invalid pattern name: got=%q, want=%q", got, want)
		}
		return nil
	})

	_ = fakedb.Run(context.Background(), fakedb.Rows{
		Names: []string{"identifier", "name", "seqid", "image"},
	}, func(ctx context.Context) error {
		_, err := db.Pattern(ctx, "HAP2024_1", "missing")
		if err == nil {
			t.Fatalf("expected an error for a missing pattern")
		}
		if !strings.Contains(err.Error(), `no pattern "missing"`) {
			t.Fatalf("invalid error: %+v", err)
		}
		return nil
	})
}

func TestQueryContext(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open hapdb: %+v", err)
	}
	defer db.Close()

	const queryLastLib = "SELECT name FROM libraries ORDER BY datetime DESC LIMIT 1"

	_ = fakedb.Run(context.Background(), fakedb.Rows{
		Names: []string{"name"},
		Values: [][]driver.Value{
			{"HAP2024_1"},
		},
	}, func(ctx context.Context) error {
		rows, err := db.QueryContext(context.Background(), queryLastLib)
		if err != nil {
			t.Fatalf("could not execute query %q: %+v", queryLastLib, err)
		}
		defer rows.Close()

		var lib string
		for rows.Next() {
			err = rows.Scan(&lib)
			if err != nil {
				t.Fatalf("could not scan library name: %+v", err)
			}
		}

		if err := rows.Err(); err != nil {
			t.Fatalf("could not scan library name: %+v", err)
		}

		if got, want := lib, "HAP2024_1"; got != want {
			t.Fatalf("invalid last library: got=%q, want=%q", got, want)
		}
		return nil
	})
}

func TestPatternValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		pat  Pattern
		want string
	}{
		{
			name: "ok",
			pat:  Pattern{Name: "click", SeqID: 0, Image: []byte{1, 1, 4, 5, 0x8F}},
		},
		{
			name: "empty-image",
			pat:  Pattern{Name: "click"},
			want: `hapdb: pattern "click" has an empty image`,
		},
		{
			name: "image-too-big",
			pat:  Pattern{Name: "click", Image: make([]byte, 101)},
			want: `hapdb: pattern "click" image too big (101 > 100 bytes)`,
		},
		{
			name: "bad-seqid",
			pat:  Pattern{Name: "click", SeqID: 16, Image: []byte{1}},
			want: `hapdb: pattern "click" has an invalid sequence id 16`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.pat.Validate()
			switch {
			case tc.want != "":
				if err == nil {
					t.Fatalf("expected an error")
				}
				if got := err.Error(); got != tc.want {
					t.Fatalf("invalid error:\ngot= %s\nwant=%s", got, tc.want)
				}
			default:
				if err != nil {
					t.Fatalf("could not validate pattern: %+v", err)
				}
			}
		})
	}
}
