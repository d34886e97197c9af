package utils

import (
	"fmt"
	"strings"
)

// likeEscaper escapes the LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern for case-insensitive substring search.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Where collects AND-ed conditions with positional arguments.
// Conditions use "?" for their single argument, which may appear more than
// once; placeholders are numbered as conditions are added.
type Where struct {
	clauses []string
	args    []any
}

func (w *Where) Add(cond string, arg any) *Where {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
	return w
}

// AddRaw appends a condition without arguments.
func (w *Where) AddRaw(cond string) *Where {
	w.clauses = append(w.clauses, cond)
	return w
}

// SQL renders " WHERE a AND b" or "" when empty.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + JoinWithAnd(w.clauses)
}

func (w *Where) Args() []any {
	return w.args
}

// Next is the placeholder index for an argument appended after the clause,
// e.g. LIMIT/OFFSET.
func (w *Where) Next() int {
	return len(w.args) + 1
}

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}
