package models

type Faculty struct {
	ID           int     `json:"faculty_id" gorm:"column:faculty_id;primaryKey;autoIncrement:false" validate:"required"`
	Name         string  `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Email        *string `json:"email" gorm:"size:100" validate:"omitempty,email,max=100"`
	Password     string  `json:"-" gorm:"not null;size:255" validate:"required,max=255"`
	DepartmentID int     `json:"department_id" gorm:"not null;index" validate:"required"`
	Role         string  `json:"role" gorm:"not null;size:100;default:'Faculty'" validate:"max=100"`
	Photo        string  `json:"photo" gorm:"not null;size:255"`
	UserID       *uint   `json:"user_id" gorm:"uniqueIndex"`

	// Relations
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
	User       *User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" validate:"-"`
}

func (Faculty) TableName() string {
	return "faculty"
}

func (f Faculty) String() string {
	return f.Name
}

func (f Faculty) StoredFiles() []string {
	if f.Photo == "" {
		return nil
	}
	return []string{f.Photo}
}
