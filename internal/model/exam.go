package model

import "time"

// swagger:model Exam
type Exam struct {
	BaseModel
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	StartTime       time.Time `gorm:"index;not null" json:"startTime"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	QuestionIDs     []uint    `gorm:"serializer:json;type:json;not null" json:"questionIds"`
	TeacherID       uint      `gorm:"index;not null" json:"teacherId"`
	IsActive        bool      `gorm:"default:true" json:"isActive"`

	// 仅查询时填充，按 QuestionIDs 顺序排列；已删除的题目不在其中
	Questions []Question `gorm:"-" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// EndTime 考试窗口的结束时刻（开区间端点）
func (e *Exam) EndTime() time.Time {
	return e.StartTime.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// IsCurrentlyActive 判断 now 是否落在考试窗口 [StartTime, StartTime+Duration) 内。
// 结束端点不含：恰好在结束时刻到达的提交会被拒绝。
func (e *Exam) IsCurrentlyActive(now time.Time) bool {
	return !now.Before(e.StartTime) && now.Before(e.EndTime())
}
