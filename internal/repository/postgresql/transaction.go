package postgresql

import (
	"context"

	"github.com/opshift/attendance-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by the context, or the pool.
// Repositories call this on every statement so the same code runs inside
// and outside RunInTx scopes.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFrom(ctx); ok {
		return tx
	}
	return db.Pool
}
