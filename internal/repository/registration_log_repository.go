package repository

import (
	"akademisi_backend/internal/model"

	"gorm.io/gorm"
)

type RegistrationLogRepository struct {
	DB *gorm.DB
}

func NewRegistrationLogRepository(db *gorm.DB) *RegistrationLogRepository {
	return &RegistrationLogRepository{DB: db}
}

func (r *RegistrationLogRepository) Create(log *model.RawRegistrationLog) error {
	return r.DB.Create(log).Error
}

func (r *RegistrationLogRepository) FindByID(id string) (*model.RawRegistrationLog, error) {
	var log model.RawRegistrationLog
	err := r.DB.Where("id = ?", id).First(&log).Error
	return &log, err
}

func (r *RegistrationLogRepository) List(page, limit int) ([]model.RawRegistrationLog, int64, error) {
	var logs []model.RawRegistrationLog
	var total int64
	query := r.DB.Model(&model.RawRegistrationLog{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, total, err
}

func (r *RegistrationLogRepository) Update(log *model.RawRegistrationLog) error {
	return r.DB.Save(log).Error
}

func (r *RegistrationLogRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.RawRegistrationLog{}).Error
}
