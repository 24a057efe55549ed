package service

import (
	"akademisi_backend/internal/model"
	"akademisi_backend/internal/repository"
	"akademisi_backend/internal/util"

	"gorm.io/gorm"
)

type ResultService struct {
	ResultRepo *repository.ResultRepository
	ExamRepo   *repository.ExamRepository
	UserRepo   *repository.UserRepository
}

func NewResultService(resultRepo *repository.ResultRepository, examRepo *repository.ExamRepository, userRepo *repository.UserRepository) *ResultService {
	return &ResultService{ResultRepo: resultRepo, ExamRepo: examRepo, UserRepo: userRepo}
}

type StudentResult struct {
	model.ExamResult
	Exam       *model.Exam `json:"exam,omitempty"`
	Percentage int         `json:"percentage"`
}

// ListForStudent 查询一名学生的全部成绩。学生只能看自己的，教师和管理员不受限。
func (s *ResultService) ListForStudent(caller *util.Claims, studentID uint) ([]StudentResult, error) {
	if caller.Role == model.Student && caller.UserID != studentID {
		return nil, util.ErrPermissionDenied
	}

	results, err := s.ResultRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	out := make([]StudentResult, 0, len(results))
	for _, r := range results {
		sr := StudentResult{ExamResult: r}
		// 考试可能已被删除，成绩仍按原题数展示
		if exam, err := s.ExamRepo.FindByID(r.ExamID); err == nil {
			sr.Exam = exam
			sr.Percentage = PercentageScore(r.Score, len(exam.QuestionIDs))
		}
		out = append(out, sr)
	}
	return out, nil
}

// ListForExam 查询一场考试的全部成绩，仅限出卷教师（或管理员）
func (s *ResultService) ListForExam(caller *util.Claims, examID uint) ([]ResultSummaryEntry, error) {
	exam, err := s.ownedExam(caller, examID)
	if err != nil {
		return nil, err
	}

	results, err := s.ResultRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	entries := s.toEntries(results, len(exam.QuestionIDs))
	return entries, nil
}

// Summarize 计算一场考试的汇总报表：每人百分比、平均分、最高分、第一名
func (s *ResultService) Summarize(caller *util.Claims, examID uint) (*ExamSummary, error) {
	exam, err := s.ownedExam(caller, examID)
	if err != nil {
		return nil, err
	}

	results, err := s.ResultRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	summary := SummarizeResults(examID, results, len(exam.QuestionIDs))
	s.fillStudentNames(summary.Results)
	if summary.TopScorer != nil {
		for _, e := range summary.Results {
			if e.ResultID == summary.TopScorer.ResultID {
				summary.TopScorer.StudentName = e.StudentName
				break
			}
		}
	}
	return &summary, nil
}

func (s *ResultService) ownedExam(caller *util.Claims, examID uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if caller.Role != model.Admin && exam.TeacherID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}
	return exam, nil
}

func (s *ResultService) toEntries(results []model.ExamResult, totalQuestions int) []ResultSummaryEntry {
	entries := make([]ResultSummaryEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, ResultSummaryEntry{
			ResultID:    r.ID,
			StudentID:   r.StudentID,
			Score:       r.Score,
			Percentage:  PercentageScore(r.Score, totalQuestions),
			SubmittedAt: r.SubmittedAt,
		})
	}
	s.fillStudentNames(entries)
	return entries
}

func (s *ResultService) fillStudentNames(entries []ResultSummaryEntry) {
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.StudentID)
	}

	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i := range entries {
		entries[i].StudentName = names[entries[i].StudentID]
	}
}
