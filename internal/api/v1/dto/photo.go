package dto

// AvatarUploadDTO is used for incoming avatar upload requests
type AvatarUploadDTO struct {
	Filename string `json:"filename" validate:"required"`
}

// AvatarUploadResponseDTO carries the presigned upload target
type AvatarUploadResponseDTO struct {
	StoragePath string `json:"storage_path"`
	UploadURL   string `json:"upload_url"`
}
