package handlers

import (
	"filevault/domain/services"
)

// Handlers รวม handler ทุกตัวสำหรับ route setup
type Handlers struct {
	UserHandler *UserHandler
	FileHandler *FileHandler
}

type Services struct {
	UserService services.UserService
	FileService services.FileService
}

func NewHandlers(s *Services) *Handlers {
	return &Handlers{
		UserHandler: NewUserHandler(s.UserService),
		FileHandler: NewFileHandler(s.FileService),
	}
}
