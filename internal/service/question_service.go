package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"akademisi_backend/internal/model"
	"akademisi_backend/internal/repository"
	"akademisi_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

type QuestionReq struct {
	Content       string          `json:"content" binding:"required"`
	Options       []string        `json:"options" binding:"required"`
	CorrectAnswer json.RawMessage `json:"correctAnswer" binding:"required"`
	Explanation   string          `json:"explanation"`
	ImageURL      string          `json:"imageUrl"`
}

// NormalizeAnswerKey 把请求中的答案键转换为规范的数字下标。
// 历史数据里答案键既有数字下标也有字母 "A"-"D"，转换只在这一处入口发生，
// 内部其余代码一律按数字下标处理。
func NormalizeAnswerKey(raw json.RawMessage) (int, error) {
	var idx int
	if err := json.Unmarshal(raw, &idx); err == nil {
		if idx < 0 || idx >= model.QuestionOptionCount {
			return 0, fmt.Errorf("correct answer index %d out of range [0,%d]", idx, model.QuestionOptionCount-1)
		}
		return idx, nil
	}

	var letter string
	if err := json.Unmarshal(raw, &letter); err != nil {
		return 0, fmt.Errorf("correct answer must be an index or a letter A-D")
	}
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'D' {
		return 0, fmt.Errorf("correct answer letter %q out of range A-D", letter)
	}
	return int(letter[0] - 'A'), nil
}

func validateOptions(options []string) error {
	if len(options) != model.QuestionOptionCount {
		return fmt.Errorf("question must have exactly %d options", model.QuestionOptionCount)
	}
	for i, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	return nil
}

func (s *QuestionService) Create(teacherID uint, req QuestionReq) (*model.Question, error) {
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}
	correct, err := NormalizeAnswerKey(req.CorrectAnswer)
	if err != nil {
		return nil, err
	}

	options := make([]string, len(req.Options))
	for i, opt := range req.Options {
		options[i] = strings.TrimSpace(opt)
	}

	q := &model.Question{
		Content:       strings.TrimSpace(req.Content),
		Options:       options,
		CorrectAnswer: correct,
		Explanation:   strings.TrimSpace(req.Explanation),
		ImageURL:      req.ImageURL,
		TeacherID:     teacherID,
	}

	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(teacherID, questionID uint, req QuestionReq) (*model.Question, error) {
	q, err := s.Repo.FindByID(questionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if q.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}
	correct, err := NormalizeAnswerKey(req.CorrectAnswer)
	if err != nil {
		return nil, err
	}

	options := make([]string, len(req.Options))
	for i, opt := range req.Options {
		options[i] = strings.TrimSpace(opt)
	}

	q.Content = strings.TrimSpace(req.Content)
	q.Options = options
	q.CorrectAnswer = correct
	q.Explanation = strings.TrimSpace(req.Explanation)
	// 全量替换：请求不带imageUrl即移除配图
	q.ImageURL = req.ImageURL

	if err := s.Repo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *QuestionService) ListByTeacher(teacherID uint, page, limit int) ([]model.Question, int64, error) {
	return s.Repo.ListByTeacher(teacherID, page, limit)
}

// Delete 删除题目。引用它的考试不受影响：判分时缺失的题目按未作答记错处理。
func (s *QuestionService) Delete(teacherID, questionID uint) error {
	q, err := s.Repo.FindByID(questionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrQuestionNotFound
		}
		return err
	}
	if q.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(questionID)
}
