// internal/app/system/limits/limits.go
package limits

// Upload and request size limits. Multipart bodies are capped at the file
// limit times the number of files the form accepts plus FormOverhead.
const (
	// MaxAdmissionFileSize applies to each admission document and to
	// disclosure documents and principal photos.
	MaxAdmissionFileSize = 25 << 20 // 25 MB

	// MaxGalleryFileSize allows short videos in the gallery.
	MaxGalleryFileSize = 100 << 20 // 100 MB

	// MaxProfilePhotoSize applies to alumni, faculty, achievement and result photos.
	MaxProfilePhotoSize = 10 << 20 // 10 MB

	// MaxStudentPhotos is how many student photos an admission may carry.
	MaxStudentPhotos = 5

	// MaxJSONBody caps JSON and urlencoded bodies.
	MaxJSONBody = 1 << 20 // 1 MB

	// FormOverhead is room for the text fields of a multipart form.
	FormOverhead = 1 << 20 // 1 MB

	// MultipartMemory is how much of a multipart body is kept in memory
	// before spilling to temp files.
	MultipartMemory = 32 << 20 // 32 MB
)
