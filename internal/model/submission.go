package model

// Submission is a student's one-time scored attempt at an assignment. The
// composite unique index makes the one-submission-per-student rule hold even
// when two submits race past the service-level existence check.
// swagger:model Submission
type Submission struct {
	BaseModel
	AssignmentID uint               `gorm:"not null;uniqueIndex:idx_submissions_assignment_student" json:"assignmentId"`
	StudentID    uint               `gorm:"not null;uniqueIndex:idx_submissions_assignment_student" json:"studentId"`
	Score        int                `gorm:"default:0" json:"score"`
	Answers      []SubmissionAnswer `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SubmissionAnswer records one graded answer of a submission. Rows are
// written at submit time and their scores can be adjusted by a re-grade,
// after which the submission total is recomputed as their sum.
// swagger:model SubmissionAnswer
type SubmissionAnswer struct {
	BaseModel
	SubmissionID uint `gorm:"index;not null" json:"submissionId"`
	QuestionID   uint `gorm:"index;not null" json:"questionId"`
	ChosenOption int  `json:"chosenOption"`
	IsCorrect    bool `gorm:"default:false" json:"isCorrect"`
	Score        int  `gorm:"default:0" json:"score"`
}

func (SubmissionAnswer) TableName() string {
	return "submission_answers"
}
