package dto

import (
	"filevault/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		IsActive:  user.IsActive,
		FileCount: len(user.FileRefs),
		CreatedAt: user.CreatedAt,
	}
}

func FileToFileResponse(file *models.File) *FileResponse {
	if file == nil {
		return nil
	}
	return &FileResponse{
		ID:         file.ID,
		UserID:     file.UserID,
		BlobKey:    file.BlobKey,
		URL:        file.URL,
		FileName:   file.FileName,
		FileSize:   file.FileSize,
		MimeType:   file.MimeType,
		UploadedAt: file.UploadedAt,
	}
}

func FilesToFileResponses(files []*models.File) []FileResponse {
	responses := make([]FileResponse, len(files))
	for i, file := range files {
		responses[i] = *FileToFileResponse(file)
	}
	return responses
}
