package repository

import (
	"errors"

	"akademisi_backend/internal/model"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Create 插入判分记录及其答题明细。
// (exam_id, student_id) 唯一索引把并发重复提交压成一次成功写入，
// 其余的以 ErrDuplicatedKey 返回给服务层。
func (r *ResultRepository) Create(result *model.ExamResult) error {
	err := r.DB.Create(result).Error
	if err != nil && IsDuplicateEntry(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *ResultRepository) FindByID(id uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Preload("Answers").First(&result, id).Error
	return &result, err
}

func (r *ResultRepository) FindByExamAndStudent(examID, studentID uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Where("exam_id = ? AND student_id = ?", examID, studentID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) ListByStudent(studentID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Preload("Answers").
		Where("student_id = ?", studentID).
		Order("submitted_at desc").Find(&results).Error
	return results, err
}

// ListByExam 按插入顺序返回某场考试的全部判分记录。
// 顺序是并列最高分时判定第一名的依据，不可改为按姓名或时间排序。
func (r *ResultRepository) ListByExam(examID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Preload("Answers").
		Where("exam_id = ?", examID).
		Order("id asc").Find(&results).Error
	return results, err
}

// IsDuplicateEntry 判断是否为 MySQL 1062 唯一键冲突
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
