package models

// Photo is the media reference carried by most site content.
// The JSON names match what the public pages already read.
type Photo struct {
	CloudinaryURL      string `bson:"cloudinary_url,omitempty" json:"cloudinaryUrl,omitempty"`
	CloudinaryPublicID string `bson:"cloudinary_public_id,omitempty" json:"cloudinaryPublicId,omitempty"`
	ResourceType       string `bson:"resource_type,omitempty" json:"resourceType,omitempty"`
}

// HasAsset reports whether a remote asset is attached.
func (p Photo) HasAsset() bool {
	return p.CloudinaryPublicID != ""
}
