// Package textsearch builds case-insensitive substring filters for list
// endpoints.
package textsearch

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pattern turns term into a LIKE pattern that matches it literally, anywhere.
func Pattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// Where keeps rows where any of cols contains term, ignoring case.
func Where(db *gorm.DB, term string, cols ...string) *gorm.DB {
	pattern := Pattern(term)
	conds := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		conds = append(conds, "LOWER("+col+`) LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	return db.Where(strings.Join(conds, " OR "), args...)
}
