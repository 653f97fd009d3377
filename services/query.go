package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// containsExpr matches rows whose column holds needle as a case-sensitive
// substring. LIKE is not used because sqlite folds ASCII case.
func containsExpr(db *gorm.DB, column string) string {
	if isPostgres(db) {
		return "strpos(" + column + ", ?) > 0"
	}
	return "instr(" + column + ", ?) > 0"
}

// arrayContainsClause restricts q to rows whose array column holds value.
// On sqlite the column keeps lib/pq's literal form: {"a","b"} for text
// arrays and {1,2} for integer arrays.
func arrayContainsClause(q *gorm.DB, column string, value interface{}) *gorm.DB {
	if isPostgres(q) {
		return q.Where("? = ANY("+column+")", value)
	}
	elem := fmt.Sprint(value)
	if s, ok := value.(string); ok {
		elem = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
	}
	return q.Where("instr(',' || trim("+column+", '{}') || ',', ?) > 0", ","+elem+",")
}
