package models

import "time"

// Team is a class a user teaches or attends.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
	TeacherID   string `json:"teacherId"`
	MemberCount int    `json:"memberCount"`
}

// AttendanceRecord is one student's presence mark for a class session.
type AttendanceRecord struct {
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Date        time.Time `json:"date"`
	Present     bool      `json:"present"`
}
