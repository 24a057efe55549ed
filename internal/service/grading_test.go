package service

import (
	"testing"

	"akademisi_backend/internal/model"
	"akademisi_backend/internal/util"
)

func twoQuestionExam() *model.Exam {
	return &model.Exam{
		QuestionIDs: []uint{1, 2},
		Questions: []model.Question{
			{BaseModel: model.BaseModel{ID: 1}, CorrectAnswer: 1},
			{BaseModel: model.BaseModel{ID: 2}, CorrectAnswer: 2},
		},
	}
}

func TestValidateAnswerSet(t *testing.T) {
	exam := twoQuestionExam()

	tests := []struct {
		name    string
		answers []SubmittedAnswer
		wantErr bool
	}{
		{"valid full answer", []SubmittedAnswer{{QuestionID: 1, SelectedOption: 0}, {QuestionID: 2, SelectedOption: 3}}, false},
		{"valid partial answer", []SubmittedAnswer{{QuestionID: 2, SelectedOption: 1}}, false},
		{"empty set", nil, true},
		{"option below range", []SubmittedAnswer{{QuestionID: 1, SelectedOption: -1}}, true},
		{"option above range", []SubmittedAnswer{{QuestionID: 1, SelectedOption: 4}}, true},
		{"question not in exam", []SubmittedAnswer{{QuestionID: 99, SelectedOption: 0}}, true},
		{"duplicate question", []SubmittedAnswer{{QuestionID: 1, SelectedOption: 0}, {QuestionID: 1, SelectedOption: 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswerSet(exam, tt.answers)
			if tt.wantErr && err != util.ErrInvalidAnswers {
				t.Errorf("err = %v, want ErrInvalidAnswers", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGradeAnswers(t *testing.T) {
	exam := twoQuestionExam()

	t.Run("one correct one wrong", func(t *testing.T) {
		score, graded := GradeAnswers(exam, []SubmittedAnswer{
			{QuestionID: 1, SelectedOption: 1},
			{QuestionID: 2, SelectedOption: 0},
		})
		if score != 1 {
			t.Fatalf("score = %d, want 1", score)
		}
		if len(graded) != 2 {
			t.Fatalf("len(graded) = %d, want 2", len(graded))
		}
		if !graded[0].IsCorrect || graded[1].IsCorrect {
			t.Errorf("graded correctness = [%v, %v], want [true, false]", graded[0].IsCorrect, graded[1].IsCorrect)
		}
	})

	t.Run("unanswered question marked wrong", func(t *testing.T) {
		score, graded := GradeAnswers(exam, []SubmittedAnswer{
			{QuestionID: 1, SelectedOption: 1},
		})
		if score != 1 {
			t.Fatalf("score = %d, want 1", score)
		}
		if graded[1].SelectedOption != model.UnansweredOption {
			t.Errorf("unanswered SelectedOption = %d, want %d", graded[1].SelectedOption, model.UnansweredOption)
		}
		if graded[1].IsCorrect {
			t.Error("unanswered question should not be correct")
		}
	})

	t.Run("all correct", func(t *testing.T) {
		score, _ := GradeAnswers(exam, []SubmittedAnswer{
			{QuestionID: 1, SelectedOption: 1},
			{QuestionID: 2, SelectedOption: 2},
		})
		if score != 2 {
			t.Fatalf("score = %d, want 2", score)
		}
	})

	t.Run("deleted question counts wrong", func(t *testing.T) {
		// 题目1已从题库删除：不在 Questions 里，但仍在 QuestionIDs 里
		partial := &model.Exam{
			QuestionIDs: []uint{1, 2},
			Questions: []model.Question{
				{BaseModel: model.BaseModel{ID: 2}, CorrectAnswer: 2},
			},
		}
		score, graded := GradeAnswers(partial, []SubmittedAnswer{
			{QuestionID: 1, SelectedOption: 0},
			{QuestionID: 2, SelectedOption: 2},
		})
		if score != 1 {
			t.Fatalf("score = %d, want 1", score)
		}
		if graded[0].IsCorrect {
			t.Error("answer to deleted question should not score")
		}
	})

	t.Run("grading follows exam question order", func(t *testing.T) {
		_, graded := GradeAnswers(exam, []SubmittedAnswer{
			{QuestionID: 2, SelectedOption: 2},
			{QuestionID: 1, SelectedOption: 1},
		})
		if graded[0].QuestionID != 1 || graded[1].QuestionID != 2 {
			t.Errorf("graded order = [%d, %d], want [1, 2]", graded[0].QuestionID, graded[1].QuestionID)
		}
	})
}
