//go:build sqlite_fts5

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// The index stores its own copy of the text with rowid = notes.id so the
// backfill can detect missing shadow rows.
const ftsSchemaSQL = `
CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
	text,
	tokenize = 'unicode61 remove_diacritics 2'
);

CREATE TRIGGER IF NOT EXISTS notes_ai AFTER INSERT ON notes BEGIN
	INSERT INTO notes_fts (rowid, text) VALUES (new.id, new.text);
END;

CREATE TRIGGER IF NOT EXISTS notes_ad AFTER DELETE ON notes BEGIN
	DELETE FROM notes_fts WHERE rowid = old.id;
END;

CREATE TRIGGER IF NOT EXISTS notes_au AFTER UPDATE OF text ON notes BEGIN
	UPDATE notes_fts SET text = new.text WHERE rowid = new.id;
END;
`

const ftsBackfillSQL = `
INSERT INTO notes_fts (rowid, text)
SELECT id, text FROM notes
WHERE NOT EXISTS (SELECT 1 FROM notes_fts WHERE rowid = notes.id)
`

func initFTS(conn *sql.DB) error {
	if _, err := conn.Exec(ftsSchemaSQL); err != nil {
		return err
	}
	_, err := conn.Exec(ftsBackfillSQL)
	return err
}

// searchPredicate restricts notes to rows whose index shadow contains every
// whitespace-separated token of term.
func searchPredicate(term string) (string, []any) {
	tokens := strings.Fields(term)
	if len(tokens) == 0 {
		return "", nil
	}
	return `id IN (SELECT rowid FROM notes_fts WHERE notes_fts MATCH ?)`, []any{ftsQuery(tokens)}
}

// ftsQuery quotes each token as its own FTS5 string so operator characters
// (* - + ( ) : ^) are matched literally. Space-separated strings are an
// implicit AND.
func ftsQuery(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = `"` + strings.ReplaceAll(tok, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}

// RebuildSearchIndex inserts index rows for notes that have none and
// returns how many were added.
func (db *DB) RebuildSearchIndex(ctx context.Context) (int, error) {
	res, err := db.conn.ExecContext(ctx, ftsBackfillSQL)
	if err != nil {
		return 0, fmt.Errorf("store: backfill fts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("store: backfill fts: %w", err)
	}
	return int(n), nil
}
