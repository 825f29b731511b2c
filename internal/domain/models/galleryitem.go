package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gallery item kinds.
const (
	GalleryPhoto = "photo"
	GalleryVideo = "video"
)

// GalleryItem is a photo or video shown in the public gallery.
type GalleryItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type        string             `bson:"type" json:"type"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Photo       `bson:",inline"`
	UploadDate  time.Time `bson:"upload_date" json:"uploadDate"`
}

// IsValidGalleryType reports whether t is photo or video.
func IsValidGalleryType(t string) bool {
	return t == GalleryPhoto || t == GalleryVideo
}
