// internal/domain/models/application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admission document fields accepted by the application form.
const (
	FileTC           = "file_tc"
	FileBirth        = "file_birth"
	FileAadhar       = "file_aadhar"
	FileParentID     = "file_parent_id"
	FileStudentPhoto = "file_student_photo"
	FilePassport     = "file_passport"
)

// UploadedFile describes one document attached to an admission.
type UploadedFile struct {
	FieldName          string `bson:"fieldname" json:"fieldname"`
	OriginalName       string `bson:"originalname" json:"originalname"`
	MimeType           string `bson:"mimetype" json:"mimetype"`
	Size               int64  `bson:"size" json:"size"`
	CloudinaryURL      string `bson:"cloudinary_url,omitempty" json:"cloudinaryUrl,omitempty"`
	CloudinaryPublicID string `bson:"cloudinary_public_id" json:"cloudinaryPublicId"`
	ResourceType       string `bson:"resource_type,omitempty" json:"resourceType,omitempty"`
}

// Application is an admission form submitted from the public site.
type Application struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SubmissionDate time.Time          `bson:"submission_date" json:"submissionDate"`
	PupilName      string             `bson:"pupil_name" json:"pupilName"`
	DateOfBirth    *time.Time         `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	FatherName     string             `bson:"father_name" json:"fatherName"`
	MotherName     string             `bson:"mother_name" json:"motherName"`
	AdmissionClass string             `bson:"admission_class" json:"admissionClass"`

	// FormDetails keeps every text field exactly as submitted.
	FormDetails       map[string]string `bson:"form_details" json:"formDetails"`
	UploadedFilesInfo []UploadedFile    `bson:"uploaded_files_info" json:"uploadedFilesInfo"`
}

// FirstFileURL returns the URL of the first file uploaded under field, or nil.
func (a Application) FirstFileURL(field string) *string {
	for _, f := range a.UploadedFilesInfo {
		if f.FieldName == field && f.CloudinaryURL != "" {
			u := f.CloudinaryURL
			return &u
		}
	}
	return nil
}
