package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DisclosureTypes lists the mandatory public disclosure categories.
var DisclosureTypes = []string{
	"Affiliation",
	"NOC",
	"Minority Certificate",
	"Building Fitness Certificate",
}

// IsValidDisclosureType reports whether t is one of DisclosureTypes.
func IsValidDisclosureType(t string) bool {
	for _, v := range DisclosureTypes {
		if v == t {
			return true
		}
	}
	return false
}

// DisclosureDocument is a certificate published on the disclosure page.
type DisclosureDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type       string             `bson:"type" json:"type"`
	Title      string             `bson:"title" json:"title"`
	Photo      `bson:",inline"`
	UploadDate time.Time `bson:"upload_date" json:"uploadDate"`
}
