package controller

import (
	"io"

	"ai-knowledgebase-be/internal/apperror"
	"ai-knowledgebase-be/internal/pkg/serverutils"
	"ai-knowledgebase-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type uploadController struct {
	uploadService service.IUploadService
}

func NewUploadController(uploadService service.IUploadService) IUploadController {
	return &uploadController{
		uploadService: uploadService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload/v1")
	h.Post("", c.Upload)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.Validation("No file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperror.Internal("Failed to read uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperror.Internal("Failed to read uploaded file", err)
	}

	req := &service.UploadRequest{
		SessionId:   ctx.FormValue("session_id"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
		Model:       ctx.FormValue("model"),
	}

	uploadRes, doc, warning, err := c.uploadService.Upload(ctx.Context(), req)
	if err != nil {
		return err
	}

	payload := fiber.Map{
		"upload":   uploadRes,
		"document": doc,
	}
	if warning != "" {
		return ctx.JSON(serverutils.SuccessResponseWithWarning("Document uploaded", payload, warning))
	}
	return ctx.JSON(serverutils.SuccessResponse("Document uploaded", payload))
}
