package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"signal-feed/internal/common/pagination"
)

// PeriodDays maps public period tokens to their window in days.
var PeriodDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// Predicate builds a parameterized WHERE clause.
// Conditions are ANDed in the order added; every value becomes a $n placeholder.
type Predicate struct {
	conditions []string
	args       []any
}

// NewPredicate creates an empty predicate.
func NewPredicate() *Predicate {
	return &Predicate{}
}

// Continue returns an empty predicate whose placeholders follow p's.
// Its Args include p's arguments, so it can build a second WHERE clause
// (e.g. an outer query over a CTE) in the same statement.
func (p *Predicate) Continue() *Predicate {
	return &Predicate{args: append([]any(nil), p.args...)}
}

// Arg appends v and returns its placeholder.
func (p *Predicate) Arg(v any) string {
	p.args = append(p.args, v)
	return fmt.Sprintf("$%d", len(p.args))
}

func (p *Predicate) add(cond string) {
	p.conditions = append(p.conditions, cond)
}

// Equal adds col = v when v is non-empty.
func (p *Predicate) Equal(col Column, v string) *Predicate {
	if v == "" {
		return p
	}
	p.add(fmt.Sprintf("%s = %s", col, p.Arg(v)))
	return p
}

// TagSlugs keeps rows carrying any of slugs.
func (p *Predicate) TagSlugs(link tagLink, parent Column, slugs []string) *Predicate {
	if len(slugs) == 0 {
		return p
	}
	p.add(fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s lt JOIN tags t ON t.id = lt.tag_id WHERE lt.%s = %s AND t.slug = ANY(%s))",
		link.Table, link.ParentFK, parent, p.Arg(pq.Array(slugs))))
	return p
}

// Search adds a case-insensitive substring match over one to three columns.
func (p *Predicate) Search(q string, cols ...Column) *Predicate {
	q = strings.TrimSpace(q)
	if q == "" || len(cols) == 0 {
		return p
	}
	if len(cols) > 3 {
		cols = cols[:3]
	}
	ph := p.Arg(escapeLike(q))
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, fmt.Sprintf("%s ILIKE %s", c, ph))
	}
	p.add("(" + strings.Join(parts, " OR ") + ")")
	return p
}

// Within keeps rows whose col is inside period before now.
// Unknown periods add nothing.
func (p *Predicate) Within(col Column, period string, now time.Time) *Predicate {
	days, ok := PeriodDays[period]
	if !ok {
		return p
	}
	p.add(fmt.Sprintf("%s >= %s", col, p.Arg(now.AddDate(0, 0, -days))))
	return p
}

// Keyset adds the continuation predicate for a descending (sort, id) order.
func (p *Predicate) Keyset(sort pagination.SortColumn, id Column, cur pagination.KeysetCursor) *Predicate {
	s := sort.Column
	switch {
	case cur.HasValue && cur.HasID:
		v := p.Arg(cur.Value)
		i := p.Arg(cur.ID)
		cond := fmt.Sprintf("%s < %s OR (%s = %s AND %s < %s)", s, v, s, v, id, i)
		if sort.Nullable {
			// NULLs sort last, so the whole NULL tail is still ahead.
			cond += fmt.Sprintf(" OR %s IS NULL", s)
		}
		p.add("(" + cond + ")")
	case sort.Nullable && cur.HasID:
		p.add(fmt.Sprintf("(%s IS NULL AND %s < %s)", s, id, p.Arg(cur.ID)))
	}
	return p
}

// Where returns "" or "WHERE a AND b ...".
func (p *Predicate) Where() string {
	if len(p.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(p.conditions, " AND ")
}

// And returns the conditions joined for use after an existing WHERE, or "".
func (p *Predicate) And() string {
	if len(p.conditions) == 0 {
		return ""
	}
	return "AND " + strings.Join(p.conditions, " AND ")
}

// Args returns the placeholder values in order.
func (p *Predicate) Args() []any {
	return p.args
}

// orderBy renders the descending keyset order for sort with id as tie-break.
func orderBy(sort pagination.SortColumn, id Column) string {
	if sort.Nullable {
		return fmt.Sprintf("ORDER BY %s DESC NULLS LAST, %s DESC", sort.Column, id)
	}
	return fmt.Sprintf("ORDER BY %s DESC, %s DESC", sort.Column, id)
}

// escapeLike escapes LIKE metacharacters and wraps s for substring matching.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
