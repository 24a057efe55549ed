package repository

import (
	"akademisi_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, id).Error
	return &exam, err
}

func (r *ExamRepository) ListAll() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Order("start_time desc").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) ListByTeacher(teacherID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("teacher_id = ?", teacherID).Order("start_time desc").Find(&exams).Error
	return exams, err
}

// ListStarted 查询已开始且手动开关打开的考试。
// 结束端点依赖 DurationMinutes，窗口过滤由服务层用 IsCurrentlyActive 完成。
func (r *ExamRepository) ListStarted(now time.Time) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("start_time <= ? AND is_active = ?", now, true).
		Order("start_time asc").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Exam{}, id).Error
}
