package models

type Student struct {
	ID           int             `json:"student_id" gorm:"column:student_id;primaryKey;autoIncrement:false" validate:"required"`
	Name         string          `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Email        *string         `json:"email" gorm:"size:100" validate:"omitempty,email,max=100"`
	Password     string          `json:"-" gorm:"not null;size:255" validate:"required,max=255"`
	Membership   MembershipLevel `json:"membership" gorm:"not null;size:1;default:'b'" validate:"omitempty,membership_level"`
	Role         string          `json:"role" gorm:"not null;size:100;default:'Student'" validate:"max=100"`
	Photo        string          `json:"photo" gorm:"not null;size:255"`
	DepartmentID int             `json:"department_id" gorm:"not null;index" validate:"required"`
	UserID       *uint           `json:"user_id" gorm:"uniqueIndex"`

	// Relations
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
	User       *User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" validate:"-"`
	Courses    []Course    `json:"courses,omitempty" gorm:"many2many:student_courses;joinForeignKey:StudentID;joinReferences:CourseCode;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
}

func (Student) TableName() string {
	return "students"
}

func (s Student) String() string {
	return s.Name
}

// StoredFiles lists the storage paths owned by the record.
func (s Student) StoredFiles() []string {
	if s.Photo == "" {
		return nil
	}
	return []string{s.Photo}
}
