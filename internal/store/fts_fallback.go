//go:build !sqlite_fts5

package store

import (
	"context"
	"database/sql"
	"strings"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; searches use a LIKE predicate on notes.text.
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPredicate restricts notes to rows whose text contains every
// whitespace-separated token of term.
func searchPredicate(term string) (string, []any) {
	tokens := strings.Fields(term)
	if len(tokens) == 0 {
		return "", nil
	}
	clauses := make([]string, len(tokens))
	args := make([]any, len(tokens))
	for i, tok := range tokens {
		clauses[i] = `text LIKE ? ESCAPE '\'`
		args[i] = "%" + likeEscaper.Replace(tok) + "%"
	}
	return strings.Join(clauses, " AND "), args
}

// RebuildSearchIndex is a no-op without FTS5: the notes table is searched directly.
func (db *DB) RebuildSearchIndex(_ context.Context) (int, error) {
	return 0, nil
}
