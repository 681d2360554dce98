package postgres

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

// baseRepository carries the connection shared by every repository
type baseRepository struct {
	db *gorm.DB
}

// getDB returns the transaction when one is given
func (r baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// applyPagination applies limit and offset when set
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

// orderBy orders on a quoted column. "datetime" needs quoting on SQLite.
func orderBy(query *gorm.DB, column string, desc bool) *gorm.DB {
	return query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
}

// applyPaginationAndSorting applies whitelisted sorting then pagination
func applyPaginationAndSorting(query *gorm.DB, sortKeyToColumn map[string]string, defaultColumn string, limit, offset int, sortBy, sortOrder string) *gorm.DB {
	column, ok := sortKeyToColumn[sortBy]
	if !ok {
		column = defaultColumn
	}

	desc := !strings.EqualFold(sortOrder, "asc")
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})

	return applyPagination(query, limit, offset)
}

// likePattern builds a case-insensitive LIKE operand; used with LOWER(column)
// so the same query runs on PostgreSQL and SQLite.
func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// studentCourse maps the join table GORM creates for Student.Courses
type studentCourse struct {
	StudentID  int `gorm:"primaryKey"`
	CourseCode int `gorm:"primaryKey"`
}

func (studentCourse) TableName() string {
	return "student_courses"
}

// applyCourseContentFilters filters announcements, assignments and materials
func applyCourseContentFilters(query *gorm.DB, filters repositories.CourseContentFilters) *gorm.DB {
	if filters.CourseCode != nil {
		query = query.Where("course_code = ?", *filters.CourseCode)
	}
	if filters.DateFrom != nil {
		query = query.Where(clause.Gte{Column: clause.Column{Name: "datetime"}, Value: *filters.DateFrom})
	}
	if filters.DateTo != nil {
		query = query.Where(clause.Lte{Column: clause.Column{Name: "datetime"}, Value: *filters.DateTo})
	}
	return query
}
