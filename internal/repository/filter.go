package repository

import (
	"fmt"
	"strings"
)

// whereClause accumulates AND-ed conditions with positional arguments.
type whereClause struct {
	conds []string
	args  []any
}

// arg registers a value and returns its placeholder.
func (w *whereClause) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) add(cond string) {
	w.conds = append(w.conds, cond)
}

// String renders the clause including the WHERE keyword, or "" when empty.
func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere in the column.
// Matching is case-sensitive.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func userWhere(f UserFilter) *whereClause {
	w := &whereClause{}
	if f.Search != "" {
		p := w.arg(containsPattern(f.Search))
		w.add(fmt.Sprintf("(u.name LIKE %s OR u.email LIKE %s)", p, p))
	}
	if f.Role != "" {
		w.add("u.role = " + w.arg(f.Role))
	}
	return w
}

func productWhere(f ProductFilter) *whereClause {
	w := &whereClause{}
	if f.Search != "" {
		p := w.arg(containsPattern(f.Search))
		w.add(fmt.Sprintf("(p.name LIKE %s OR p.description LIKE %s)", p, p))
	}
	if f.Category != "" {
		w.add("p.category = " + w.arg(f.Category))
	}
	if f.MinPrice != nil {
		w.add("p.price >= " + w.arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		w.add("p.price <= " + w.arg(*f.MaxPrice))
	}
	return w
}

var productSortColumns = map[string]string{
	"createdAt": "p.created_at",
	"updatedAt": "p.updated_at",
	"price":     "p.price",
	"name":      "p.name",
}

// orderBy renders the ORDER BY clause for s, falling back to newest first for
// unknown fields. The id tiebreak keeps pages stable.
func (s ProductSort) orderBy() string {
	col, ok := productSortColumns[s.Field]
	if !ok {
		return "ORDER BY p.created_at DESC, p.id"
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, p.id", col, dir)
}
