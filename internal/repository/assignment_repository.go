package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// CreateWithQuestions inserts the assignment and its questions in one
// transaction so a partial failure never leaves an assignment with a
// dangling question list.
func (r *AssignmentRepository) CreateWithQuestions(a *model.Assignment, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].AssignmentID = a.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		a.Questions = questions
		return nil
	})
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.Preload("Questions").First(&a, id).Error
	return &a, err
}

func (r *AssignmentRepository) FindAll() ([]model.Assignment, error) {
	var as []model.Assignment
	err := r.DB.Preload("Questions").Order("created_at desc").Find(&as).Error
	return as, err
}

func (r *AssignmentRepository) Update(a *model.Assignment) error {
	return r.DB.Omit("Questions").Save(a).Error
}

// DeleteWithQuestions removes the assignment and cascades to its questions.
func (r *AssignmentRepository) DeleteWithQuestions(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Assignment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("assignment_id = ?", id).Delete(&model.Question{}).Error
	})
}
