package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// SubmissionView is the read-side join of a submission with the student
// username and the assignment title.
type SubmissionView struct {
	model.Submission
	StudentUsername string `gorm:"column:student_username" json:"studentUsername"`
	AssignmentTitle string `gorm:"column:assignment_title" json:"assignmentTitle"`
}

// CreateWithAnswers persists the submission and its per-answer records in
// one transaction.
func (r *SubmissionRepository) CreateWithAnswers(s *model.Submission, answers []model.SubmissionAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].SubmissionID = s.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		s.Answers = answers
		return nil
	})
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Preload("Answers").First(&s, id).Error
	return &s, err
}

func (r *SubmissionRepository) FindByAssignmentAndStudent(assignmentID, studentID uint) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) FindViewByID(id uint) (*SubmissionView, error) {
	var row SubmissionView
	err := r.submissionViewQuery().
		Where("submissions.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *SubmissionRepository) FindViewsByAssignment(assignmentID uint) ([]SubmissionView, error) {
	var rows []SubmissionView
	err := r.submissionViewQuery().
		Where("submissions.assignment_id = ?", assignmentID).
		Order("submissions.created_at desc").
		Scan(&rows).Error
	return rows, err
}

func (r *SubmissionRepository) submissionViewQuery() *gorm.DB {
	return r.DB.Table("submissions").
		Select("submissions.*, users.username as student_username, assignments.title as assignment_title").
		Joins("LEFT JOIN users ON users.id = submissions.student_id AND users.deleted_at IS NULL").
		Joins("LEFT JOIN assignments ON assignments.id = submissions.assignment_id AND assignments.deleted_at IS NULL").
		Where("submissions.deleted_at IS NULL")
}

func (r *SubmissionRepository) FindViewsByStudent(studentID uint) ([]SubmissionView, error) {
	var rows []SubmissionView
	err := r.submissionViewQuery().
		Where("submissions.student_id = ?", studentID).
		Order("submissions.created_at desc").
		Scan(&rows).Error
	return rows, err
}

func (r *SubmissionRepository) FindByStudent(studentID uint) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.Preload("Answers").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&ss).Error
	return ss, err
}

func (r *SubmissionRepository) UpdateScore(submissionID uint, score int) error {
	return r.DB.Model(&model.Submission{}).
		Where("id = ?", submissionID).
		Update("score", score).
		Error
}

func (r *SubmissionRepository) FindAnswerByID(id uint) (*model.SubmissionAnswer, error) {
	var a model.SubmissionAnswer
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *SubmissionRepository) UpdateAnswerScore(answerID uint, score int) error {
	return r.DB.Model(&model.SubmissionAnswer{}).
		Where("id = ?", answerID).
		Update("score", score).
		Error
}

// SumAnswerScores recomputes a submission's total from its answer rows.
func (r *SubmissionRepository) SumAnswerScores(submissionID uint) (int, error) {
	var total int
	err := r.DB.Model(&model.SubmissionAnswer{}).
		Where("submission_id = ?", submissionID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&total).Error
	return total, err
}

// Delete removes the submission and its answer rows. The delete is hard so
// the (assignment, student) unique index does not block a later resubmit.
func (r *SubmissionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Delete(&model.Submission{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Unscoped().Where("submission_id = ?", id).Delete(&model.SubmissionAnswer{}).Error
	})
}
