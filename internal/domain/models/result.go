package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Board examination types.
const (
	ResultICSE = "ICSE"
	ResultISC  = "ISC"
)

// Result is a top scorer in a board examination.
type Result struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type        string             `bson:"type" json:"type"`
	StudentName string             `bson:"student_name" json:"studentName"`
	Percentage  float64            `bson:"percentage" json:"percentage"`
	Photo       `bson:",inline"`
	UploadDate  time.Time `bson:"upload_date" json:"uploadDate"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
