package service

import (
	"akademisi_backend/internal/model"
	"akademisi_backend/internal/util"
)

type SubmittedAnswer struct {
	QuestionID     uint `json:"questionId" binding:"required"`
	SelectedOption int  `json:"selectedOption"`
}

// ValidateAnswerSet 校验答卷：非空、选项在合法范围内、每个答案都指向
// 考试题目列表里的题、同一题不能答两次。任何违反都返回 ErrInvalidAnswers。
func ValidateAnswerSet(exam *model.Exam, answers []SubmittedAnswer) error {
	if len(answers) == 0 {
		return util.ErrInvalidAnswers
	}

	inExam := make(map[uint]bool, len(exam.QuestionIDs))
	for _, id := range exam.QuestionIDs {
		inExam[id] = true
	}

	seen := make(map[uint]bool, len(answers))
	for _, a := range answers {
		if a.SelectedOption < 0 || a.SelectedOption >= model.QuestionOptionCount {
			return util.ErrInvalidAnswers
		}
		if !inExam[a.QuestionID] {
			return util.ErrInvalidAnswers
		}
		if seen[a.QuestionID] {
			return util.ErrInvalidAnswers
		}
		seen[a.QuestionID] = true
	}
	return nil
}

// GradeAnswers 按考试题目列表的顺序逐题判分。
// 答案与题目的正确下标一致记为答对；未作答的题记为未答且算错；
// 题目已被删除时同样算错（占位处理，不报错）。
// 返回答对题数与完整的逐题明细。
func GradeAnswers(exam *model.Exam, answers []SubmittedAnswer) (int, []model.ResultAnswer) {
	byID := make(map[uint]model.Question, len(exam.Questions))
	for _, q := range exam.Questions {
		byID[q.ID] = q
	}

	submitted := make(map[uint]int, len(answers))
	for _, a := range answers {
		submitted[a.QuestionID] = a.SelectedOption
	}

	score := 0
	graded := make([]model.ResultAnswer, 0, len(exam.QuestionIDs))
	for _, questionID := range exam.QuestionIDs {
		row := model.ResultAnswer{
			QuestionID:     questionID,
			SelectedOption: model.UnansweredOption,
		}

		if selected, ok := submitted[questionID]; ok {
			row.SelectedOption = selected
			if q, exists := byID[questionID]; exists && q.CorrectAnswer == selected {
				row.IsCorrect = true
				score++
			}
		}

		graded = append(graded, row)
	}

	return score, graded
}
