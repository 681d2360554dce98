package models

type MembershipLevel string

const (
	MembershipBronze MembershipLevel = "b"
	MembershipSilver MembershipLevel = "s"
	MembershipGold   MembershipLevel = "g"
)

// Label returns the display name stored codes are rendered with.
func (m MembershipLevel) Label() string {
	switch m {
	case MembershipBronze:
		return "Bronze"
	case MembershipSilver:
		return "Silver"
	case MembershipGold:
		return "Gold"
	}
	return ""
}

func (m MembershipLevel) IsValid() bool {
	return m.Label() != ""
}

type UserType string

const (
	UserTypeStudent UserType = "ST"
	UserTypeFaculty UserType = "FA"
)

func (u UserType) Label() string {
	switch u {
	case UserTypeStudent:
		return "Student"
	case UserTypeFaculty:
		return "Faculty"
	}
	return ""
}

func (u UserType) IsValid() bool {
	return u.Label() != ""
}

const (
	DefaultStudentRole = "Student"
	DefaultFacultyRole = "Faculty"

	DefaultCoursePrice       = 100
	DefaultCourseDescription = "Course Description"
	DefaultMembershipPrice   = 10
)
