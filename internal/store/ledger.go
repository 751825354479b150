// Package store owns all reads and writes of ledger rows. Every mutation is
// gated by the ownership policy, and the legacy->owned transition always
// happens through a conditional UPDATE so two racing requests cannot both
// win a row.
package store

import (
	"errors"
	"fmt"

	"github.com/rehanFauzan/uangbro-api/internal/models"
	"github.com/rehanFauzan/uangbro-api/internal/policy"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the target transaction id does not exist.
	ErrNotFound = errors.New("store: transaction not found")
	// ErrUnauthorized means the caller resolved but does not own the row.
	ErrUnauthorized = errors.New("store: caller does not own this transaction")
	// ErrUnauthenticated means the operation needs a resolved caller.
	ErrUnauthenticated = errors.New("store: login required")
	// ErrValidation means the input failed validation before any write.
	ErrValidation = errors.New("store: invalid input")
)

// LedgerStore is the ownership-aware access layer for transactions.
type LedgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// UpsertInput carries the writable fields of a transaction.
type UpsertInput struct {
	ID          string
	Type        string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        string // YYYY-MM-DD
}

// Get returns a single transaction by id.
func (s *LedgerStore) Get(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// List returns every transaction the caller may read, newest date first,
// ties in insertion order. Anonymous callers see only legacy rows; an
// authenticated user additionally sees their own.
func (s *LedgerStore) List(caller *models.User) ([]models.Transaction, error) {
	q := s.db.Model(&models.Transaction{})
	if caller == nil {
		q = q.Where("user_id IS NULL")
	} else {
		q = q.Where("user_id = ? OR user_id IS NULL", caller.ID)
	}

	var txs []models.Transaction
	if err := q.Order("date DESC, created_at ASC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Upsert inserts a new transaction or updates an existing one.
//
// A new id always succeeds; the row is attributed to the caller when one
// resolved, otherwise it is stored as legacy (user_id NULL). An existing id
// is an update gated by the ownership policy. Updating a legacy row as an
// authenticated user claims it in the same write.
func (s *LedgerStore) Upsert(caller *models.User, in UpsertInput) (*models.Transaction, error) {
	if in.Amount.IsNegative() {
		return nil, ErrValidation
	}

	var existing models.Transaction
	err := s.db.Where("id = ?", in.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx := models.Transaction{
			ID:          in.ID,
			Type:        in.Type,
			Amount:      in.Amount,
			Category:    in.Category,
			Description: in.Description,
			Date:        in.Date,
		}
		if caller != nil {
			uid := caller.ID
			tx.UserID = &uid
		}
		if createErr := s.db.Create(&tx).Error; createErr != nil {
			// Two concurrent first writes of the same id: the loser hits
			// the primary key. Re-read and take the update path.
			if readErr := s.db.Where("id = ?", in.ID).First(&existing).Error; readErr != nil {
				return nil, fmt.Errorf("insert transaction: %w", createErr)
			}
			return s.update(caller, in, &existing)
		}
		return &tx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check transaction: %w", err)
	}

	return s.update(caller, in, &existing)
}

func (s *LedgerStore) update(caller *models.User, in UpsertInput, existing *models.Transaction) (*models.Transaction, error) {
	d := policy.Decide(caller, existing.UserID)
	if !d.CanWrite {
		if caller == nil {
			return nil, ErrUnauthenticated
		}
		return nil, ErrUnauthorized
	}

	updates := map[string]interface{}{
		"type":        in.Type,
		"amount":      in.Amount,
		"category":    in.Category,
		"description": in.Description,
		"date":        in.Date,
	}

	q := s.db.Model(&models.Transaction{}).Where("id = ?", in.ID)
	if existing.UserID == nil {
		// implicit claim: only valid while the row is still unowned
		updates["user_id"] = caller.ID
		q = q.Where("user_id IS NULL")
	} else {
		q = q.Where("user_id = ?", caller.ID)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// somebody else claimed or took the row between our read and write
		return nil, ErrUnauthorized
	}

	return s.Get(in.ID)
}

// Delete removes a transaction. Same gate as update, except nothing is
// claimed: the row just goes away. A legacy row still needs some resolved
// caller to delete it.
func (s *LedgerStore) Delete(caller *models.User, id string) error {
	var existing models.Transaction
	err := s.db.Where("id = ?", id).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check transaction: %w", err)
	}

	d := policy.Decide(caller, existing.UserID)
	if !d.CanDelete {
		if caller == nil {
			return ErrUnauthenticated
		}
		return ErrUnauthorized
	}

	res := s.db.
		Where("id = ? AND (user_id IS NULL OR user_id = ?)", id, caller.ID).
		Delete(&models.Transaction{})
	if res.Error != nil {
		return fmt.Errorf("delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUnauthorized
	}
	return nil
}
