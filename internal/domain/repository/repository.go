package repository

import (
	"cyber_champions/internal/platform/database"
)

// on picks the transaction when one is in flight, the store otherwise.
func on(db *database.Store, tx *database.Tx) database.Querier {
	if tx != nil {
		return tx
	}
	return db
}
