package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrincipalMessage is the principal's welcome note. The site keeps a single
// one; creating a new message replaces whatever was there.
type PrincipalMessage struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PrincipalName string             `bson:"principal_name" json:"principalName"`
	MessageText   string             `bson:"message_text" json:"messageText"`
	Qualification string             `bson:"qualification,omitempty" json:"qualification,omitempty"`
	FromYear      string             `bson:"from_year,omitempty" json:"fromYear,omitempty"`
	ToYear        string             `bson:"to_year,omitempty" json:"toYear,omitempty"`
	Photo         `bson:",inline"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
