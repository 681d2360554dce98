package models

type Course struct {
	Code            int             `json:"code" gorm:"primaryKey;autoIncrement:false;uniqueIndex:idx_course_code_department_name,priority:1" validate:"required"`
	Name            string          `json:"name" gorm:"not null;size:255;unique;uniqueIndex:idx_course_code_department_name,priority:3" validate:"required,max=255"`
	Price           int             `json:"price" gorm:"not null;default:100" validate:"gte=0"`
	Description     string          `json:"description" gorm:"not null;size:200;default:'Course Description'" validate:"max=200"`
	MembershipLevel MembershipLevel `json:"membership_level" gorm:"size:1" validate:"omitempty,membership_level"`
	DepartmentID    int             `json:"department_id" gorm:"not null;index;uniqueIndex:idx_course_code_department_name,priority:2" validate:"required"`
	FacultyID       *int            `json:"faculty_id" gorm:"index"`
	StudentKey      int             `json:"student_key" gorm:"not null;unique" validate:"required"`
	FacultyKey      int             `json:"faculty_key" gorm:"not null;unique" validate:"required"`

	// Relations
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
	Faculty    *Faculty    `json:"faculty,omitempty" gorm:"foreignKey:FacultyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" validate:"-"`
}

func (Course) TableName() string {
	return "courses"
}

func (c Course) String() string {
	return c.Name
}
