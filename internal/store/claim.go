package store

import (
	"fmt"

	"github.com/rehanFauzan/uangbro-api/internal/models"
)

// Claim assigns the given legacy transactions to the caller and reports how
// many rows actually changed hands.
//
// Each id gets its own conditional write (user_id set only while still
// NULL), so a concurrent claim of the same row has exactly one winner. Ids
// that are missing, already the caller's, or owned by someone else are
// skipped silently. The batch is not atomic as a whole: re-running it after
// a partial failure is safe and converges, already-claimed rows are just
// skipped again.
func (s *LedgerStore) Claim(caller *models.User, ids []string) (int64, error) {
	if caller == nil {
		return 0, ErrUnauthenticated
	}
	if len(ids) == 0 {
		return 0, ErrValidation
	}

	var changed int64
	for _, id := range ids {
		res := s.db.Model(&models.Transaction{}).
			Where("id = ? AND user_id IS NULL", id).
			Update("user_id", caller.ID)
		if res.Error != nil {
			return changed, fmt.Errorf("claim transaction %s: %w", id, res.Error)
		}
		changed += res.RowsAffected
	}
	return changed, nil
}
