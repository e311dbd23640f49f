package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"filevault/domain/apperrors"
	"filevault/domain/dto"
	"filevault/domain/services"
	"filevault/pkg/logger"
	"filevault/pkg/utils"
)

type FileHandler struct {
	fileService services.FileService
}

func NewFileHandler(fileService services.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// UploadFile รับ multipart field "file" แล้วส่งเข้า upload workflow
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(ctx, "Unauthorized upload attempt")
		return utils.UnauthorizedResponse(c, "")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "No file provided", "user_id", user.ID, "error", err)
		return utils.BadRequestResponse(c, "Please upload a file")
	}

	logger.InfoContext(ctx, "File upload attempt",
		"user_id", user.ID, "filename", fileHeader.Filename, "size", fileHeader.Size)

	record, err := h.fileService.UploadFile(ctx, user.ID, fileHeader)
	if err != nil {
		return h.mapFileError(c, err)
	}

	return utils.SuccessResponse(c, dto.FileToFileResponse(record))
}

// GetUserFiles คืนไฟล์ทั้งหมดของ user ที่ login อยู่ (ใหม่สุดก่อน)
func (h *FileHandler) GetUserFiles(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	files, err := h.fileService.GetUserFiles(ctx, user.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to retrieve user files", "user_id", user.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	responses := dto.FilesToFileResponses(files)
	return utils.ListSuccessResponse(c, responses, len(responses))
}

// DeleteFile ลบไฟล์ตาม id — เฉพาะของตัวเอง
func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	fileIDStr := c.Params("id")
	fileID, err := uuid.Parse(fileIDStr)
	if err != nil {
		logger.WarnContext(ctx, "Invalid file ID", "file_id", fileIDStr)
		return utils.BadRequestResponse(c, "Invalid file ID")
	}

	if err := h.fileService.DeleteFile(ctx, user.ID, fileID); err != nil {
		return h.mapFileError(c, err)
	}

	return utils.SuccessResponse(c, fiber.Map{})
}

// mapFileError แปลง workflow error เป็น HTTP response ตาม taxonomy
// ไม่ leak รายละเอียดภายใน (key, DSN) ออกไปกับ message
func (h *FileHandler) mapFileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNoFile):
		return utils.BadRequestResponse(c, "Please upload a file")
	case errors.Is(err, apperrors.ErrUnsupportedMediaType):
		return utils.UnsupportedMediaTypeResponse(c, "File type not allowed. Only images, PDFs, documents and plain text are accepted")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return utils.PayloadTooLargeResponse(c, "File exceeds the upload size limit")
	case errors.Is(err, apperrors.ErrUserNotFound):
		return utils.NotFoundResponse(c, "User not found")
	case errors.Is(err, apperrors.ErrFileNotFound):
		return utils.NotFoundResponse(c, "File not found")
	case errors.Is(err, apperrors.ErrBlobStore):
		return utils.RemoteStoreFailureResponse(c)
	default:
		return utils.InternalServerErrorResponse(c)
	}
}
