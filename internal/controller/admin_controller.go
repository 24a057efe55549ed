package controller

import (
	"strconv"

	"akademisi_backend/internal/model"
	"akademisi_backend/internal/repository"
	"akademisi_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	LogRepo *repository.RegistrationLogRepository
}

func NewAdminController(logRepo *repository.RegistrationLogRepository) *AdminController {
	return &AdminController{LogRepo: logRepo}
}

// ListRegistrationLogs godoc
// @Summary 获取注册留痕列表
// @Tags 管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(50)
// @Success 200 {object} util.Response
// @Router /api/admin/raw-registrations [get]
func (c *AdminController) ListRegistrationLogs(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	logs, total, err := c.LogRepo.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: logs, Total: total, Page: page, Limit: limit})
}

type RegistrationLogReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Kelas string `json:"kelas"`
	Role  string `json:"role"`
}

// UpdateRegistrationLog godoc
// @Summary 更新注册留痕
// @Tags 管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "记录ID"
// @Param body body RegistrationLogReq true "更新内容"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/raw-registrations/{id} [put]
func (c *AdminController) UpdateRegistrationLog(ctx *gin.Context) {
	id := ctx.Param("id")

	log, err := c.LogRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req RegistrationLogReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.Name != "" {
		log.Name = req.Name
	}
	if req.Email != "" {
		log.Email = req.Email
	}
	if req.Kelas != "" {
		log.Kelas = req.Kelas
	}
	if req.Role != "" {
		log.Role = model.UserRole(req.Role)
	}

	if err := c.LogRepo.Update(log); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, log)
}

// DeleteRegistrationLog godoc
// @Summary 删除注册留痕
// @Tags 管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "记录ID"
// @Success 200 {object} util.Response
// @Router /api/admin/raw-registrations/{id} [delete]
func (c *AdminController) DeleteRegistrationLog(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.LogRepo.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
