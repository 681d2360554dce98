package models

// FileOwner is implemented by records that reference uploaded files.
type FileOwner interface {
	StoredFiles() []string
}

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Department{},
		&Faculty{},
		&Course{},
		&Student{},
		&Payment{},
		&Announcement{},
		&Assignment{},
		&Submission{},
		&Material{},
		&Membership{},
	}
}
