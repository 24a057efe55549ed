package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"akademisi_backend/internal/model"
	"akademisi_backend/internal/repository"
	"akademisi_backend/internal/util"
	"akademisi_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	activeExamsCacheKey = "exams:active"
	activeExamsCacheTTL = 30 * time.Second
)

type ExamService struct {
	Repo         *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	Redis        *redis.Client
}

func NewExamService(repo *repository.ExamRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client) *ExamService {
	return &ExamService{Repo: repo, QuestionRepo: questionRepo, Redis: rdb}
}

type ExamReq struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description" binding:"required"`
	StartTime       time.Time `json:"startTime" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	QuestionIDs     []uint    `json:"questionIds" binding:"required"`
	IsActive        *bool     `json:"isActive"`
}

func validateExamReq(req ExamReq) error {
	if req.DurationMinutes < 1 {
		return errors.New("duration must be at least 1 minute")
	}
	if len(req.QuestionIDs) == 0 {
		return errors.New("exam must reference at least one question")
	}
	seen := make(map[uint]bool, len(req.QuestionIDs))
	for _, id := range req.QuestionIDs {
		if seen[id] {
			return errors.New("duplicate question reference")
		}
		seen[id] = true
	}
	return nil
}

func (s *ExamService) Create(teacherID uint, req ExamReq) (*model.Exam, error) {
	if err := validateExamReq(req); err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		QuestionIDs:     req.QuestionIDs,
		TeacherID:       teacherID,
		IsActive:        true,
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}

	if err := s.Repo.Create(exam); err != nil {
		return nil, err
	}
	s.invalidateActiveCache()
	return s.populate(exam)
}

func (s *ExamService) Update(teacherID, examID uint, req ExamReq) (*model.Exam, error) {
	exam, err := s.Repo.FindByID(examID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if exam.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	if err := validateExamReq(req); err != nil {
		return nil, err
	}

	exam.Title = strings.TrimSpace(req.Title)
	exam.Description = strings.TrimSpace(req.Description)
	exam.StartTime = req.StartTime
	exam.DurationMinutes = req.DurationMinutes
	exam.QuestionIDs = req.QuestionIDs
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(exam); err != nil {
		return nil, err
	}
	s.invalidateActiveCache()
	return s.populate(exam)
}

func (s *ExamService) Delete(teacherID, examID uint) error {
	exam, err := s.Repo.FindByID(examID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrExamNotFound
		}
		return err
	}
	if exam.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	if err := s.Repo.Delete(examID); err != nil {
		return err
	}
	s.invalidateActiveCache()
	return nil
}

// Get 查询考试并按 QuestionIDs 的顺序解析出完整题目
func (s *ExamService) Get(examID uint) (*model.Exam, error) {
	exam, err := s.Repo.FindByID(examID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return s.populate(exam)
}

func (s *ExamService) ListAll() ([]model.Exam, error) {
	exams, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}
	return s.populateAll(exams)
}

func (s *ExamService) ListByTeacher(teacherID uint) ([]model.Exam, error) {
	exams, err := s.Repo.ListByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	return s.populateAll(exams)
}

// ListActive 返回当前可作答的考试：手动开关打开且 now 落在时间窗口内。
// 结果在 Redis 中短暂缓存，考试写操作会使缓存失效。
func (s *ExamService) ListActive(now time.Time) ([]model.Exam, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, activeExamsCacheKey).Result(); err == nil {
			var cached []model.Exam
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				active := cached[:0]
				for _, exam := range cached {
					if exam.IsCurrentlyActive(now) {
						active = append(active, exam)
					}
				}
				return active, nil
			}
		}
	}

	exams, err := s.Repo.ListStarted(now)
	if err != nil {
		return nil, err
	}

	active := make([]model.Exam, 0, len(exams))
	for _, exam := range exams {
		if exam.IsCurrentlyActive(now) {
			active = append(active, exam)
		}
	}

	populated, err := s.populateAll(active)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(populated); err == nil {
			if err := s.Redis.Set(ctx, activeExamsCacheKey, payload, activeExamsCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache active exams", zap.Error(err))
			}
		}
	}

	return populated, nil
}

func (s *ExamService) invalidateActiveCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), activeExamsCacheKey).Err(); err != nil && err != redis.Nil {
		logger.Log.Warn("failed to invalidate active exams cache", zap.Error(err))
	}
}

// populate 按考试的引用顺序填充题目，已删除的题目直接跳过
func (s *ExamService) populate(exam *model.Exam) (*model.Exam, error) {
	qs, err := s.QuestionRepo.FindByIDs(exam.QuestionIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}

	exam.Questions = make([]model.Question, 0, len(exam.QuestionIDs))
	for _, id := range exam.QuestionIDs {
		if q, ok := byID[id]; ok {
			exam.Questions = append(exam.Questions, q)
		}
	}
	return exam, nil
}

func (s *ExamService) populateAll(exams []model.Exam) ([]model.Exam, error) {
	for i := range exams {
		if _, err := s.populate(&exams[i]); err != nil {
			return nil, err
		}
	}
	return exams, nil
}
