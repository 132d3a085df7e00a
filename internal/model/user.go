package model

type UserRole string

const (
	Lecturer UserRole = "LECTURER"
	Student  UserRole = "STUDENT"
)

// swagger:model User
type User struct {
	BaseModel
	Username string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;not null;default:'STUDENT'" json:"role"`
	Image    string   `gorm:"size:255" json:"image,omitempty"`
}

func (User) TableName() string {
	return "users"
}
