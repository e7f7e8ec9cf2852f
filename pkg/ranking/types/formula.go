package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RankingFormula is a named ranking expression stored per instance.
type RankingFormula struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key         string             `bson:"key" json:"key"`
	Expression  string             `bson:"expression" json:"expression"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Variables   []string           `bson:"variables" json:"variables"`
	Valid       bool               `bson:"valid" json:"valid"`
	LastError   string             `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedBy   string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	CheckedAt   time.Time          `bson:"checkedAt,omitempty" json:"checkedAt,omitempty"`
}
