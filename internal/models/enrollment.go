package models

// Enrollment links a student to a course. The (student_id, course_id) pair is
// unique; the references are not foreign-key enforced, so rows may dangle
// after a student or course is deleted.
type Enrollment struct {
	ID             int64   `db:"id" json:"id"`
	StudentID      int64   `db:"student_id" json:"studentId"`
	CourseID       int64   `db:"course_id" json:"courseId"`
	EnrollmentDate string  `db:"enrollment_date" json:"enrollmentDate"`
	Grade          *string `db:"grade" json:"grade"`
}

// EnrollmentDetail is the denormalized join of an enrollment with its student
// and course. It is assembled on every read and never persisted.
type EnrollmentDetail struct {
	ID             int64   `json:"id"`
	StudentID      int64   `json:"studentId"`
	StudentName    string  `json:"studentName"`
	StudentEmail   string  `json:"studentEmail"`
	CourseID       int64   `json:"courseId"`
	CourseName     string  `json:"courseName"`
	CourseCode     string  `json:"courseCode"`
	Credits        int64   `json:"credits"`
	EnrollmentDate string  `json:"enrollmentDate"`
	Grade          *string `json:"grade"`
}

// Stats reports row counts per table.
type Stats struct {
	Students    int64 `json:"students"`
	Courses     int64 `json:"courses"`
	Enrollments int64 `json:"enrollments"`
}
