package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDisplayTime(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "05-Mar-24, 02:30 PM", FormatDisplayTime(ts))
	assert.Equal(t, "05-Mar-24, 02:30 PM", Announcement{PostedAt: ts}.PostDate())
	assert.Equal(t, "05-Mar-24, 02:30 PM", Material{PostedAt: ts}.PostDate())
	assert.Equal(t, "05-Mar-24, 02:30 PM", Submission{SubmittedAt: ts}.SubmissionDate())

	a := Assignment{PostedAt: ts, Deadline: ts.Add(-14 * time.Hour)}
	assert.Equal(t, "05-Mar-24, 02:30 PM", a.PostDate())
	assert.Equal(t, "05-Mar-24, 12:30 AM", a.DueDate())
}

func TestFormatTimeDifference(t *testing.T) {
	deadline := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		before time.Duration
		want   string
	}{
		{name: "days", before: 26*time.Hour + 3*time.Minute + 4*time.Second, want: "1 days 2 hours 3 minutes 4 seconds"},
		{name: "days with zero hours", before: 48 * time.Hour, want: "2 days 0 hours 0 minutes 0 seconds"},
		{name: "hours", before: 2*time.Hour + 5*time.Second, want: "2 hours 0 minutes 5 seconds"},
		{name: "minutes", before: 3*time.Minute + 4*time.Second, want: "3 minutes 4 seconds"},
		{name: "seconds", before: 45 * time.Second, want: "45 seconds"},
		{name: "on the deadline", before: 0, want: "0 seconds"},
		{name: "sub-second remainder is dropped", before: 45*time.Second + 900*time.Millisecond, want: "45 seconds"},
		{name: "late", before: -(90 * time.Second), want: "late by 1 minutes 30 seconds"},
		{name: "late by under a second", before: -(500 * time.Millisecond), want: "late by 1 seconds"},
		{name: "late remainder rounds up", before: -(90*time.Second + time.Millisecond), want: "late by 1 minutes 31 seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeDifference(deadline, deadline.Add(-tt.before)))
		})
	}
}

func TestSubmissionTimeDifference(t *testing.T) {
	deadline := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	s := Submission{SubmittedAt: deadline.Add(-45 * time.Second)}

	assert.Equal(t, "", s.TimeDifference())

	s.Assignment = &Assignment{Deadline: deadline}
	assert.Equal(t, "45 seconds", s.TimeDifference())
}

func TestSubmissionFileName(t *testing.T) {
	file := "submissions/3f2a/report.pdf"

	assert.Equal(t, "report.pdf", Submission{File: &file}.FileName())
	assert.Equal(t, "", Submission{}.FileName())
}

func TestStoredFiles(t *testing.T) {
	file := "materials/notes.pdf"
	empty := ""

	assert.Equal(t, []string{"materials/notes.pdf"}, Material{File: &file}.StoredFiles())
	assert.Nil(t, Material{File: &empty}.StoredFiles())
	assert.Nil(t, Assignment{}.StoredFiles())
	assert.Equal(t, []string{"profile_pics/a.png"}, Student{Photo: "profile_pics/a.png"}.StoredFiles())
}

func TestMembershipLevel(t *testing.T) {
	assert.Equal(t, "Gold", MembershipGold.Label())
	assert.True(t, MembershipSilver.IsValid())
	assert.False(t, MembershipLevel("x").IsValid())
	assert.Equal(t, "Faculty", UserTypeFaculty.Label())
	assert.False(t, UserType("AD").IsValid())
}
