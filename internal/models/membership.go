package models

// Membership is a catalog entry. Students and courses store the tier as a
// plain MembershipLevel code rather than a reference to this table.
type Membership struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Price    float64 `json:"price" gorm:"type:decimal(10,2);not null;default:10" validate:"gte=0"`
	Features string  `json:"features" gorm:"type:text;not null"`
}

func (Membership) TableName() string {
	return "memberships"
}

func (m Membership) String() string {
	return m.Name
}
