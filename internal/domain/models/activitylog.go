package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityLog records an admin action.
type ActivityLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Username  string             `bson:"username" json:"username"`
	Action    string             `bson:"action" json:"action"`
	Details   string             `bson:"details,omitempty" json:"details,omitempty"`
	IP        string             `bson:"ip,omitempty" json:"ip,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
