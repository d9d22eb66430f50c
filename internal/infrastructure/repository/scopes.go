package repository

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate adds an exclusive row lock to the query. Dialects without
// row-level locking (sqlite) drop the clause and rely on the database lock.
func ForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Search matches term case-insensitively against any of columns.
// LOWER/LIKE is used instead of ILIKE so the query runs on every supported driver.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// lastNumber returns the greatest value of column starting with prefix, or ""
func lastNumber(db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	var numbers []string
	err := db.Model(model).
		Where(column+" LIKE ?", prefix+"%").
		Order(column+" DESC").
		Limit(1).
		Pluck(column, &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

// sumDecimal runs a single-column aggregate query and scans it as a decimal.
// The row is read through database/sql so decimal's Scanner sees the raw value.
func sumDecimal(query *gorm.DB, expr string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := query.Select("COALESCE(" + expr + ", 0)").Row().Scan(&sum)
	return sum, err
}
