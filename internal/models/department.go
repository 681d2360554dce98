package models

type Department struct {
	ID          int     `json:"department_id" gorm:"column:department_id;primaryKey;autoIncrement:false" validate:"required"`
	Name        string  `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Description *string `json:"description" gorm:"type:text"`

	// Computed fields (not stored)
	StudentCount int64 `json:"student_count" gorm:"-"`
	FacultyCount int64 `json:"faculty_count" gorm:"-"`
	CourseCount  int64 `json:"course_count" gorm:"-"`
}

func (Department) TableName() string {
	return "departments"
}

func (d Department) String() string {
	return d.Name
}
