package model

import "encoding/json"

// Question belongs to exactly one assignment. Options is an ordered JSON
// array of option strings; CorrectAnswer is the index of the correct option.
// swagger:model Question
type Question struct {
	BaseModel
	AssignmentID  uint            `gorm:"index;not null" json:"assignmentId"`
	Text          string          `gorm:"type:text;not null" json:"text"`
	Options       json.RawMessage `gorm:"type:json" json:"options"`
	CorrectAnswer int             `gorm:"not null" json:"correctAnswer"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList decodes the stored options array.
func (q *Question) OptionList() ([]string, error) {
	var opts []string
	if len(q.Options) == 0 {
		return opts, nil
	}
	err := json.Unmarshal(q.Options, &opts)
	return opts, err
}
