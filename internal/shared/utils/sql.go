package utils

import "strings"

// JoinWithOr joins a slice of strings with OR operator
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so the input matches literally.
// Backslash is PostgreSQL's default LIKE escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern returns an ILIKE pattern matching s anywhere in the column.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
