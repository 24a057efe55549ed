package service

import (
	"errors"
	"testing"
	"time"

	"akademisi_backend/internal/model"
	"akademisi_backend/internal/repository"
	"akademisi_backend/internal/util"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Question{},
		&model.Exam{},
		&model.ExamResult{},
		&model.ResultAnswer{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type submissionFixture struct {
	svc        *SubmissionService
	examRepo   *repository.ExamRepository
	resultRepo *repository.ResultRepository
	exam       *model.Exam
	questions  []model.Question
}

// 两道题的进行中考试：窗口 [start, start+30m)，start 为 10 分钟前
func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()
	db := newTestDB(t)

	examRepo := repository.NewExamRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	resultRepo := repository.NewResultRepository(db)
	examSvc := NewExamService(examRepo, questionRepo, nil)

	questions := []model.Question{
		{Content: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, TeacherID: 1},
		{Content: "q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, TeacherID: 1},
	}
	for i := range questions {
		if err := questionRepo.Create(&questions[i]); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	exam := &model.Exam{
		Title:           "ujian",
		Description:     "desc",
		StartTime:       time.Now().Add(-10 * time.Minute),
		DurationMinutes: 30,
		QuestionIDs:     []uint{questions[0].ID, questions[1].ID},
		TeacherID:       1,
		IsActive:        true,
	}
	if err := examRepo.Create(exam); err != nil {
		t.Fatalf("create exam: %v", err)
	}

	return &submissionFixture{
		svc:        NewSubmissionService(examSvc, resultRepo),
		examRepo:   examRepo,
		resultRepo: resultRepo,
		exam:       exam,
		questions:  questions,
	}
}

func TestSubmitPreconditions(t *testing.T) {
	t.Run("unknown exam", func(t *testing.T) {
		f := newSubmissionFixture(t)
		_, err := f.svc.Submit(5, f.exam.ID+999, SubmissionReq{
			Answers: []SubmittedAnswer{{QuestionID: f.questions[0].ID, SelectedOption: 1}},
		}, time.Now())
		if !errors.Is(err, util.ErrExamNotFound) {
			t.Fatalf("err = %v, want ErrExamNotFound", err)
		}
	})

	t.Run("before window opens", func(t *testing.T) {
		f := newSubmissionFixture(t)
		_, err := f.svc.Submit(5, f.exam.ID, SubmissionReq{
			Answers: []SubmittedAnswer{{QuestionID: f.questions[0].ID, SelectedOption: 1}},
		}, f.exam.StartTime.Add(-time.Minute))
		if !errors.Is(err, util.ErrExamNotActive) {
			t.Fatalf("err = %v, want ErrExamNotActive", err)
		}
	})

	t.Run("manual flag off", func(t *testing.T) {
		f := newSubmissionFixture(t)
		f.exam.IsActive = false
		if err := f.examRepo.Update(f.exam); err != nil {
			t.Fatalf("update exam: %v", err)
		}
		_, err := f.svc.Submit(5, f.exam.ID, SubmissionReq{
			Answers: []SubmittedAnswer{{QuestionID: f.questions[0].ID, SelectedOption: 1}},
		}, time.Now())
		if !errors.Is(err, util.ErrExamNotActive) {
			t.Fatalf("err = %v, want ErrExamNotActive", err)
		}
	})

	t.Run("invalid answers rejected before persisting", func(t *testing.T) {
		f := newSubmissionFixture(t)
		_, err := f.svc.Submit(5, f.exam.ID, SubmissionReq{
			Answers: []SubmittedAnswer{{QuestionID: 9999, SelectedOption: 0}},
		}, time.Now())
		if !errors.Is(err, util.ErrInvalidAnswers) {
			t.Fatalf("err = %v, want ErrInvalidAnswers", err)
		}
		if _, err := f.resultRepo.FindByExamAndStudent(f.exam.ID, 5); err != gorm.ErrRecordNotFound {
			t.Fatalf("invalid submission must not create a result, got %v", err)
		}
	})
}

func TestSubmitGradesAndPersists(t *testing.T) {
	f := newSubmissionFixture(t)

	result, err := f.svc.Submit(5, f.exam.ID, SubmissionReq{
		Answers: []SubmittedAnswer{
			{QuestionID: f.questions[0].ID, SelectedOption: 1}, // 对
			{QuestionID: f.questions[1].ID, SelectedOption: 0}, // 错
		},
	}, time.Now())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.Score != 1 {
		t.Errorf("Score = %d, want 1", result.Score)
	}

	stored, err := f.resultRepo.FindByID(result.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Score != 1 || len(stored.Answers) != 2 {
		t.Errorf("stored result: score=%d answers=%d, want 1/2", stored.Score, len(stored.Answers))
	}
}

func TestSubmitSecondAttempt(t *testing.T) {
	f := newSubmissionFixture(t)

	first, err := f.svc.Submit(5, f.exam.ID, SubmissionReq{
		Answers: []SubmittedAnswer{
			{QuestionID: f.questions[0].ID, SelectedOption: 1},
			{QuestionID: f.questions[1].ID, SelectedOption: 2},
		},
	}, time.Now())
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// 窗口关闭后的重复提交：必须报已提交，而不是已结束
	late := f.exam.EndTime().Add(time.Hour)
	_, err = f.svc.Submit(5, f.exam.ID, SubmissionReq{
		Answers: []SubmittedAnswer{{QuestionID: f.questions[0].ID, SelectedOption: 0}},
	}, late)
	if !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Fatalf("err = %v, want ErrAlreadySubmitted", err)
	}

	// 第一份成绩保持不变
	stored, err := f.resultRepo.FindByExamAndStudent(f.exam.ID, 5)
	if err != nil {
		t.Fatalf("FindByExamAndStudent: %v", err)
	}
	if stored.ID != first.ID || stored.Score != first.Score {
		t.Errorf("stored result changed: id=%d score=%d, want id=%d score=%d",
			stored.ID, stored.Score, first.ID, first.Score)
	}
}

// 绕过服务层预检直接写库，验证唯一索引兜底和错误转换
func TestResultUniqueIndexBackstop(t *testing.T) {
	f := newSubmissionFixture(t)

	mk := func() *model.ExamResult {
		return &model.ExamResult{
			ExamID:      f.exam.ID,
			StudentID:   7,
			Score:       2,
			StartedAt:   time.Now(),
			SubmittedAt: time.Now(),
		}
	}

	if err := f.resultRepo.Create(mk()); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := f.resultRepo.Create(mk()); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second insert err = %v, want gorm.ErrDuplicatedKey", err)
	}
}

// 更新题目时不带imageUrl应清除配图
func TestQuestionUpdateClearsImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(repository.NewQuestionRepository(db))

	q, err := svc.Create(1, QuestionReq{
		Content:       "with image",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: []byte(`0`),
		ImageURL:      "/uploads/questions/x.png",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(1, q.ID, QuestionReq{
		Content:       "without image",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: []byte(`0`),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty after update without image", updated.ImageURL)
	}
}
