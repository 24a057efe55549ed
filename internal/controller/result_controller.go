package controller

import (
	"errors"
	"net/http"
	"time"

	"akademisi_backend/internal/service"
	"akademisi_backend/internal/util"
	"akademisi_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	SubmissionService *service.SubmissionService
	ResultService     *service.ResultService
}

func NewResultController(submissionSvc *service.SubmissionService, resultSvc *service.ResultService) *ResultController {
	return &ResultController{SubmissionService: submissionSvc, ResultService: resultSvc}
}

// Submit godoc
// @Summary 提交考卷
// @Description 整卷一次性提交并判分；一名学生对一场考试只能提交一次
// @Tags 成绩模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "考试ID"
// @Param body body service.SubmissionReq true "答卷"
// @Success 201 {object} util.Response{data=model.ExamResult}
// @Failure 400 {object} util.Response "答卷不合法"
// @Failure 403 {object} util.Response "考试不在活动窗口内"
// @Failure 404 {object} util.Response "考试不存在"
// @Failure 409 {object} util.Response "已提交过"
// @Router /api/results/{examId}/submit [post]
func (c *ResultController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	examID, err := util.ParseUint(ctx.Param("examId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.SubmissionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SubmissionService.Submit(user.UserID, examID, req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			monitoring.SubmissionCounter.WithLabelValues("not_found").Inc()
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadySubmitted):
			monitoring.SubmissionCounter.WithLabelValues("already_submitted").Inc()
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrExamNotActive):
			monitoring.SubmissionCounter.WithLabelValues("not_active").Inc()
			util.Error(ctx, http.StatusForbidden, err.Error())
		case errors.Is(err, util.ErrInvalidAnswers):
			monitoring.SubmissionCounter.WithLabelValues("invalid_answers").Inc()
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.SubmissionCounter.WithLabelValues("accepted").Inc()
	util.Created(ctx, result)
}

// StudentResults godoc
// @Summary 查询学生成绩
// @Description 学生只能查询自己的成绩，教师和管理员不受限
// @Tags 成绩模块
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/results/student/{studentId} [get]
func (c *ResultController) StudentResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID, err := util.ParseUint(ctx.Param("studentId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	results, err := c.ResultService.ListForStudent(user, studentID)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, results)
}

// ExamResults godoc
// @Summary 查询一场考试的全部成绩
// @Description 仅限出卷教师或管理员
// @Tags 成绩模块
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "考试ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/results/exam/{examId} [get]
func (c *ResultController) ExamResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	examID, err := util.ParseUint(ctx.Param("examId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entries, err := c.ResultService.ListForExam(user, examID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, entries)
}

// ExamSummary godoc
// @Summary 考试成绩汇总报表
// @Description 平均百分比、最高百分比及第一名（并列时取先提交者）
// @Tags 成绩模块
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "考试ID"
// @Success 200 {object} util.Response{data=service.ExamSummary}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/results/exam/{examId}/summary [get]
func (c *ResultController) ExamSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	examID, err := util.ParseUint(ctx.Param("examId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.ResultService.Summarize(user, examID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, summary)
}
