package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultGraduationYear is stored when no year is supplied.
const DefaultGraduationYear = "N/A"

// Alumnus is a former-student profile.
type Alumnus struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name               string             `bson:"name" json:"name"`
	TitleOrAchievement string             `bson:"title_or_achievement" json:"titleOrAchievement"`
	Description        string             `bson:"description" json:"description"`
	GraduationYear     string             `bson:"graduation_year" json:"graduationYear"`
	Photo              `bson:",inline"`
	UploadDate         time.Time `bson:"upload_date" json:"uploadDate"`
}
