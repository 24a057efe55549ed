package model

// QuestionOptionCount 每道选择题固定的选项数量
const QuestionOptionCount = 4

// swagger:model Question
type Question struct {
	BaseModel
	Content       string   `gorm:"type:text;not null" json:"content"`
	Options       []string `gorm:"serializer:json;type:json;not null" json:"options"`
	CorrectAnswer int      `gorm:"not null" json:"correctAnswer"` // 正确选项下标 0-3
	Explanation   string   `gorm:"type:text" json:"explanation"`
	ImageURL      string   `gorm:"size:255" json:"imageUrl,omitempty"`
	TeacherID     uint     `gorm:"index;not null" json:"teacherId"`
}

func (Question) TableName() string {
	return "questions"
}
