package service

import (
	"testing"
	"time"
)

func TestValidateExamReq(t *testing.T) {
	base := ExamReq{
		Title:           "Ujian Tengah Semester",
		Description:     "Matematika kelas XII",
		StartTime:       time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
		QuestionIDs:     []uint{1, 2, 3},
	}

	tests := []struct {
		name    string
		mutate  func(*ExamReq)
		wantErr bool
	}{
		{"valid", func(r *ExamReq) {}, false},
		{"single minute duration", func(r *ExamReq) { r.DurationMinutes = 1 }, false},
		{"zero duration", func(r *ExamReq) { r.DurationMinutes = 0 }, true},
		{"negative duration", func(r *ExamReq) { r.DurationMinutes = -5 }, true},
		{"no questions", func(r *ExamReq) { r.QuestionIDs = nil }, true},
		{"duplicate question", func(r *ExamReq) { r.QuestionIDs = []uint{1, 2, 1} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.QuestionIDs = append([]uint(nil), base.QuestionIDs...)
			tt.mutate(&req)

			err := validateExamReq(req)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateExamReq() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
