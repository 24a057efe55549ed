package service

import (
	"math"
	"time"

	"akademisi_backend/internal/model"
)

// PercentageScore 把答对题数换算成四舍五入的百分比。
// 题目数为 0 的考试返回 0，不产生除零错误。
func PercentageScore(score, totalQuestions int) int {
	if totalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(totalQuestions) * 100))
}

type ResultSummaryEntry struct {
	ResultID    uint      `json:"resultId"`
	StudentID   uint      `json:"studentId"`
	StudentName string    `json:"studentName,omitempty"`
	Score       int       `json:"score"`
	Percentage  int       `json:"percentage"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type ExamSummary struct {
	ExamID            uint                 `json:"examId"`
	TotalQuestions    int                  `json:"totalQuestions"`
	SubmissionCount   int                  `json:"submissionCount"`
	AveragePercentage int                  `json:"averagePercentage"`
	HighestPercentage int                  `json:"highestPercentage"`
	TopScorer         *ResultSummaryEntry  `json:"topScorer,omitempty"`
	Results           []ResultSummaryEntry `json:"results"`
}

// SummarizeResults 汇总一场考试的全部判分记录。
// results 必须按插入顺序传入：并列最高分时第一名取先提交入库的那条。
// 平均分是各记录四舍五入百分比的均值，再次四舍五入。
func SummarizeResults(examID uint, results []model.ExamResult, totalQuestions int) ExamSummary {
	summary := ExamSummary{
		ExamID:          examID,
		TotalQuestions:  totalQuestions,
		SubmissionCount: len(results),
		Results:         make([]ResultSummaryEntry, 0, len(results)),
	}

	sum := 0
	for _, r := range results {
		entry := ResultSummaryEntry{
			ResultID:    r.ID,
			StudentID:   r.StudentID,
			Score:       r.Score,
			Percentage:  PercentageScore(r.Score, totalQuestions),
			SubmittedAt: r.SubmittedAt,
		}
		summary.Results = append(summary.Results, entry)

		sum += entry.Percentage
		// 严格大于才替换：并列时保住先入库的记录
		if summary.TopScorer == nil || entry.Percentage > summary.HighestPercentage {
			top := entry
			summary.TopScorer = &top
			summary.HighestPercentage = entry.Percentage
		}
	}

	if len(results) > 0 {
		summary.AveragePercentage = int(math.Round(float64(sum) / float64(len(results))))
	}

	return summary
}
