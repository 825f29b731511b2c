package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Faculty is a teaching or staff profile.
type Faculty struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                 string             `bson:"name" json:"name"`
	SubjectOrDesignation string             `bson:"subject_or_designation" json:"subjectOrDesignation"` // e.g. "Chemistry Teacher"
	Qualification        string             `bson:"qualification" json:"qualification"`                 // e.g. "M.Sc., B.Ed."
	Description          string             `bson:"description" json:"description"`
	Photo                `bson:",inline"`
	CreatedAt            time.Time `bson:"created_at" json:"createdAt"`
}
