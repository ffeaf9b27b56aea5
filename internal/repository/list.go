package repository

import (
	"strings"

	"github.com/embunadw/E-Procurement/internal/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// listSpec describes how one resource is searched and sorted. Sort keys from
// the request are only ever used as map keys; the column written into the
// query always comes from sortCols.
type listSpec struct {
	table       string
	searchCols  []string
	sortCols    map[string]string
	defaultSort string
}

func sortSet(cols ...string) map[string]string {
	m := make(map[string]string, len(cols))
	for _, c := range cols {
		m[c] = c
	}
	return m
}

// SortColumn resolves a requested sort key, falling back to the default.
func (s listSpec) SortColumn(key string) string {
	if col, ok := s.sortCols[key]; ok {
		return col
	}
	return s.defaultSort
}

func (s listSpec) orderBy(q dto.ListQuery) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Table: s.table, Name: s.SortColumn(q.Sort)},
		Desc:   q.Desc(),
	}
}

// search adds a case-sensitive LIKE over every search column.
func (s listSpec) search(db *gorm.DB, term string) *gorm.DB {
	if term == "" || len(s.searchCols) == 0 {
		return db
	}
	pattern := "%" + escapeLike(term) + "%"
	conds := make([]string, len(s.searchCols))
	args := make([]any, len(s.searchCols))
	for i, col := range s.searchCols {
		conds[i] = col + " LIKE ?"
		args[i] = pattern
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// paginate counts and fetches one page of base filtered by q. Preloads are
// applied to the page query only.
func paginate[T any](base *gorm.DB, spec listSpec, q dto.ListQuery, preloads ...string) ([]T, int64, error) {
	filtered := spec.search(base, q.Search).Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	page := filtered.Order(spec.orderBy(q)).Offset(q.Offset()).Limit(q.Limit)
	if spec.table != "" {
		page = page.Select(spec.table + ".*")
	}
	for _, p := range preloads {
		page = page.Preload(p)
	}
	var rows []T
	err := page.Find(&rows).Error
	return rows, total, err
}

// conn returns tx when the caller runs inside a transaction.
func conn(tx, db *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

var forUpdate = clause.Locking{Strength: "UPDATE"}
