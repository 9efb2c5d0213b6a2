// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bib

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bibrender/pkg/types"
)

// ReadPapersDB reads the papers table of a knowledge-base database
// (columns id, title, authors as a JSON list, date as RFC 3339). Every
// paper becomes an article keyed by its id. The database is opened
// read-only.
func ReadPapersDB(ctx context.Context, path string) ([]*types.Entry, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(authors, ''), COALESCE(date, '')
		 FROM papers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var entries []*types.Entry
	for rows.Next() {
		var id, title, authorsJSON, date string
		if err := rows.Scan(&id, &title, &authorsJSON, &date); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}

		e := &types.Entry{Key: id, Type: types.EntryArticle, Title: title}
		if authorsJSON != "" {
			var authors []string
			if err := json.Unmarshal([]byte(authorsJSON), &authors); err != nil {
				return nil, fmt.Errorf("paper %s: decoding authors: %w", id, err)
			}
			for _, a := range authors {
				if p, ok := parsePerson(a); ok {
					e.Authors = append(e.Authors, p)
				}
			}
		}
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			e.Date = types.YearOf(t.Year())
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
