package model

// RawRegistrationLog 注册请求的原始留痕，供管理员审查。
// 与 User 分开存储，注册失败时也会保留记录。
type RawRegistrationLog struct {
	UUIDBase
	Name  string   `gorm:"size:100;not null" json:"name"`
	Email string   `gorm:"size:100;not null" json:"email"`
	Kelas string   `gorm:"size:50" json:"kelas"`
	Role  UserRole `gorm:"size:20;not null" json:"role"`
}

func (RawRegistrationLog) TableName() string {
	return "raw_registration_logs"
}
