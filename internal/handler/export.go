package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"time"

	"github.com/rehanFauzan/uangbro-api/internal/middleware"
	"github.com/rehanFauzan/uangbro-api/internal/models"
	"github.com/rehanFauzan/uangbro-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler produces CSV/XLSX downloads of the caller's own
// transactions. Exports cover owned rows only, not legacy ones.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"ID", "Type", "Amount", "Category", "Description", "Date"}

func (h *ExportHandler) ownTransactions(c *gin.Context) ([]models.Transaction, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, util.KindUnauthenticated)
		return nil, false
	}

	var txs []models.Transaction
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC, created_at ASC").
		Find(&txs).Error; err != nil {
		log.Printf("export query: %v", err)
		util.Fail(c, util.KindStorage)
		return nil, false
	}
	return txs, true
}

// ExportCSV streams the caller's transactions as a CSV download.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	txs, ok := h.ownTransactions(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"uangbro_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for i := range txs {
		tx := &txs[i]
		writer.Write([]string{
			tx.ID,
			tx.Type,
			tx.Amount.StringFixed(2),
			tx.Category,
			tx.Description,
			tx.Date,
		})
	}
}

// ExportXLSX writes the same data as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	txs, ok := h.ownTransactions(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		log.Printf("new sheet: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, head := range exportHeader {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx := range txs {
		tx := &txs[idx]
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), tx.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), tx.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), tx.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), tx.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), tx.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), tx.Date)
	}

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 16)
	f.SetColWidth(sheetName, "E", "E", 30)
	f.SetColWidth(sheetName, "F", "F", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"uangbro_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("write xlsx: %v", err)
		util.Fail(c, util.KindStorage)
	}
}
