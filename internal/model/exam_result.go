package model

import "time"

// UnansweredOption 未作答题目的占位选项值
const UnansweredOption = -1

// ExamResult 一名学生一次考试的判分记录，创建后不再修改。
// (exam_id, student_id) 上的唯一索引是防止重复提交的最终防线。
type ExamResult struct {
	BaseModel
	ExamID      uint           `gorm:"uniqueIndex:idx_exam_student;not null" json:"examId"`
	StudentID   uint           `gorm:"uniqueIndex:idx_exam_student;index;not null" json:"studentId"`
	Score       int            `gorm:"not null" json:"score"` // 答对题数，非百分比
	Answers     []ResultAnswer `gorm:"foreignKey:ResultID" json:"answers"`
	StartedAt   time.Time      `gorm:"not null" json:"startedAt"`
	SubmittedAt time.Time      `gorm:"not null" json:"submittedAt"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

type ResultAnswer struct {
	BaseModel
	ResultID       uint `gorm:"index;not null" json:"-"`
	QuestionID     uint `gorm:"not null" json:"questionId"`
	SelectedOption int  `gorm:"not null" json:"selectedOption"` // UnansweredOption 表示未作答
	IsCorrect      bool `gorm:"default:false" json:"isCorrect"`
}

func (ResultAnswer) TableName() string {
	return "result_answers"
}
