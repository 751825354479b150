package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/rehanFauzan/uangbro-api/internal/middleware"
	"github.com/rehanFauzan/uangbro-api/internal/models"
	"github.com/rehanFauzan/uangbro-api/internal/store"
	"github.com/rehanFauzan/uangbro-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler serves the ledger endpoints. All four run in soft auth
// mode: the resolver already put the caller (or nothing) on the context and
// the store decides what that caller may do.
type TransactionHandler struct {
	Store *store.LedgerStore
}

func NewTransactionHandler(s *store.LedgerStore) *TransactionHandler {
	return &TransactionHandler{Store: s}
}

// ---------- request/response shapes ----------

type upsertTransactionReq struct {
	ID          string           `json:"id" binding:"required,max=255"`
	Type        string           `json:"type" binding:"required,oneof=income expense"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required,max=100"`
	Description string           `json:"description" binding:"max=1000"`
	Date        string           `json:"date" binding:"required"`
}

type claimReq struct {
	IDs []string `json:"ids" binding:"required"`
}

type transactionResp struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description *string         `json:"description"`
	Date        string          `json:"date"`
	OwnerID     *string         `json:"ownerId"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toTransactionResp(tx *models.Transaction) transactionResp {
	resp := transactionResp{
		ID:        tx.ID,
		Type:      tx.Type,
		Amount:    tx.Amount,
		Category:  tx.Category,
		Date:      tx.Date,
		CreatedAt: tx.CreatedAt,
	}
	if tx.Description != "" {
		desc := tx.Description
		resp.Description = &desc
	}
	if tx.UserID != nil {
		owner := strconv.FormatUint(uint64(*tx.UserID), 10)
		resp.OwnerID = &owner
	}
	return resp
}

// ---------- endpoints ----------

// List returns every transaction the caller may see: their own plus legacy
// (unowned) rows, or only legacy rows when anonymous.
func (h *TransactionHandler) List(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	txs, err := h.Store.List(caller)
	if err != nil {
		failStore(c, err)
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}

	util.Success(c, util.Response{
		"transactions": items,
	})
}

// Upsert creates or updates a transaction. The client supplies the id, so
// posting an existing id is an update, never a duplicate.
func (h *TransactionHandler) Upsert(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req upsertTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.KindValidation)
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if err := util.ValidateCategory(req.Category); err != nil {
		util.FailMsg(c, util.KindValidation, "Invalid category")
		return
	}
	if err := util.ValidateAmount(*req.Amount); err != nil {
		util.FailMsg(c, util.KindValidation, "Invalid amount")
		return
	}
	if err := util.ValidateDate(req.Date); err != nil {
		util.FailMsg(c, util.KindValidation, "Invalid date, expected YYYY-MM-DD")
		return
	}

	tx, err := h.Store.Upsert(caller, store.UpsertInput{
		ID:          req.ID,
		Type:        req.Type,
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		failStore(c, err)
		return
	}

	util.Success(c, util.Response{
		"id":          tx.ID,
		"transaction": toTransactionResp(tx),
	})
}

// Delete removes a transaction the caller is allowed to delete.
func (h *TransactionHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	id := c.Param("id")
	if id == "" {
		util.FailMsg(c, util.KindValidation, "Transaction id required")
		return
	}

	if err := h.Store.Delete(caller, id); err != nil {
		failStore(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "Transaction deleted",
	})
}

// Claim bulk-assigns legacy transactions to the caller. Strict auth: the
// router runs this behind RequireAuth.
func (h *TransactionHandler) Claim(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req claimReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.FailMsg(c, util.KindValidation, "ids array required")
		return
	}

	changed, err := h.Store.Claim(caller, req.IDs)
	if err != nil {
		failStore(c, err)
		return
	}

	util.Success(c, util.Response{
		"changedCount": changed,
	})
}
