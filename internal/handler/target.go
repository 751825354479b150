package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/rehanFauzan/uangbro-api/internal/middleware"
	"github.com/rehanFauzan/uangbro-api/internal/models"
	"github.com/rehanFauzan/uangbro-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TargetHandler serves savings-goal CRUD. Everything here is strictly
// per-user: targets have no legacy state and no claiming.
type TargetHandler struct {
	DB *gorm.DB
}

func NewTargetHandler(db *gorm.DB) *TargetHandler {
	return &TargetHandler{DB: db}
}

type createTargetReq struct {
	Name         string           `json:"name" binding:"required,max=128"`
	TargetAmount *decimal.Decimal `json:"target_amount" binding:"required"`
	Deadline     string           `json:"deadline" binding:"required"`
}

type updateTargetReq struct {
	Name            *string          `json:"name"`
	TargetAmount    *decimal.Decimal `json:"target_amount"`
	CurrentProgress *decimal.Decimal `json:"current_progress"`
	Deadline        *string          `json:"deadline"`
	IsCompleted     *bool            `json:"is_completed"`
}

type targetResp struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CurrentProgress decimal.Decimal `json:"current_progress"`
	Deadline        string          `json:"deadline"`
	IsCompleted     bool            `json:"is_completed"`
}

func toTargetResp(tg *models.Target) targetResp {
	return targetResp{
		ID:              tg.ID,
		Name:            tg.Name,
		TargetAmount:    tg.TargetAmount,
		CurrentProgress: tg.CurrentProgress,
		Deadline:        tg.Deadline,
		IsCompleted:     tg.IsCompleted,
	}
}

// List returns the caller's targets, nearest deadline first.
func (h *TargetHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, util.KindUnauthenticated)
		return
	}

	var targets []models.Target
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("deadline ASC").
		Find(&targets).Error; err != nil {
		log.Printf("list targets: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}

	items := make([]targetResp, 0, len(targets))
	for i := range targets {
		items = append(items, toTargetResp(&targets[i]))
	}

	util.Success(c, util.Response{
		"targets": items,
	})
}

func (h *TargetHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, util.KindUnauthenticated)
		return
	}

	var req createTargetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.FailMsg(c, util.KindValidation, "name, target_amount and deadline are required")
		return
	}
	if err := util.ValidateAmount(*req.TargetAmount); err != nil {
		util.FailMsg(c, util.KindValidation, "Invalid target amount")
		return
	}
	if err := util.ValidateDate(req.Deadline); err != nil {
		util.FailMsg(c, util.KindValidation, "Invalid deadline, expected YYYY-MM-DD")
		return
	}

	target := models.Target{
		UserID:       user.ID,
		Name:         req.Name,
		TargetAmount: *req.TargetAmount,
		Deadline:     req.Deadline,
	}
	if err := h.DB.Create(&target).Error; err != nil {
		log.Printf("create target: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}

	util.Success(c, util.Response{
		"target": toTargetResp(&target),
	})
}

func (h *TargetHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, util.KindUnauthenticated)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.FailMsg(c, util.KindValidation, "Invalid target id")
		return
	}

	var req updateTargetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.KindValidation)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.TargetAmount != nil {
		if err := util.ValidateAmount(*req.TargetAmount); err != nil {
			util.FailMsg(c, util.KindValidation, "Invalid target amount")
			return
		}
		updates["target_amount"] = *req.TargetAmount
	}
	if req.CurrentProgress != nil {
		if err := util.ValidateAmount(*req.CurrentProgress); err != nil {
			util.FailMsg(c, util.KindValidation, "Invalid progress amount")
			return
		}
		updates["current_progress"] = *req.CurrentProgress
	}
	if req.Deadline != nil {
		if err := util.ValidateDate(*req.Deadline); err != nil {
			util.FailMsg(c, util.KindValidation, "Invalid deadline, expected YYYY-MM-DD")
			return
		}
		updates["deadline"] = *req.Deadline
	}
	if req.IsCompleted != nil {
		updates["is_completed"] = *req.IsCompleted
	}

	if len(updates) == 0 {
		util.FailMsg(c, util.KindValidation, "No fields to update")
		return
	}

	var target models.Target
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, util.KindNotFound)
		} else {
			log.Printf("lookup target: %v", err)
			util.Fail(c, util.KindStorage)
		}
		return
	}

	if err := h.DB.Model(&target).Updates(updates).Error; err != nil {
		log.Printf("update target: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}
	if err := h.DB.First(&target, target.ID).Error; err != nil {
		log.Printf("reload target: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}

	util.Success(c, util.Response{
		"target": toTargetResp(&target),
	})
}

func (h *TargetHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, util.KindUnauthenticated)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.FailMsg(c, util.KindValidation, "Invalid target id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Target{})
	if res.Error != nil {
		log.Printf("delete target: %v", res.Error)
		util.Fail(c, util.KindStorage)
		return
	}
	if res.RowsAffected == 0 {
		util.Fail(c, util.KindNotFound)
		return
	}

	util.Success(c, util.Response{
		"message": "Target deleted",
	})
}
