package specification

import (
	"simple-note/internal/repository/scope"

	"gorm.io/gorm"
)

// LatestFirst orders notes newest first. Notes created within the same
// clock tick fall back to id so the order is stable.
type LatestFirst struct{}

func (s LatestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByCreatedDesc, scope.OrderByIDDesc)
}
