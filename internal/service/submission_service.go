package service

import (
	"time"

	"akademisi_backend/internal/model"
	"akademisi_backend/internal/repository"
	"akademisi_backend/internal/util"
	"akademisi_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionService struct {
	ExamSvc    *ExamService
	ResultRepo *repository.ResultRepository
}

func NewSubmissionService(examSvc *ExamService, resultRepo *repository.ResultRepository) *SubmissionService {
	return &SubmissionService{ExamSvc: examSvc, ResultRepo: resultRepo}
}

type SubmissionReq struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required"`
}

// Submit 处理一名学生对一场考试的整卷提交。
// 前置检查依次为：考试存在、未提交过、考试处于活动状态、答卷合法；
// 每一步失败对应一个可区分的错误。重复提交竞态最终由 (exam, student)
// 唯一索引兜底，这里的存在性检查只是提前拦截。
func (s *SubmissionService) Submit(studentID, examID uint, req SubmissionReq, now time.Time) (*model.ExamResult, error) {
	exam, err := s.ExamSvc.Get(examID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ResultRepo.FindByExamAndStudent(examID, studentID); err == nil {
		return nil, util.ErrAlreadySubmitted
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if !exam.IsActive || !exam.IsCurrentlyActive(now) {
		return nil, util.ErrExamNotActive
	}

	if err := ValidateAnswerSet(exam, req.Answers); err != nil {
		return nil, err
	}

	score, graded := GradeAnswers(exam, req.Answers)

	result := &model.ExamResult{
		ExamID:      examID,
		StudentID:   studentID,
		Score:       score,
		Answers:     graded,
		StartedAt:   now,
		SubmittedAt: now,
	}

	if err := s.ResultRepo.Create(result); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}

	logger.Log.Info("exam submitted",
		zap.Uint("examID", examID),
		zap.Uint("studentID", studentID),
		zap.Int("score", score),
		zap.Int("totalQuestions", len(exam.QuestionIDs)),
	)

	return result, nil
}
