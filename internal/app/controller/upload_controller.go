package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lacreme/bakery-backend/internal/app/service"
	"github.com/lacreme/bakery-backend/internal/middleware"
	"github.com/lacreme/bakery-backend/internal/storage"
)

// ImagePresigner is satisfied by *storage.S3Storage.
type ImagePresigner interface {
	PresignImageUpload(ctx context.Context, folder string, ownerID uint, filename, contentType string) (*storage.PresignedUpload, error)
}

type UploadController struct {
	presigner     ImagePresigner
	bakeryService service.BakeryService
}

func NewUploadController(presigner ImagePresigner, bakeryService service.BakeryService) *UploadController {
	return &UploadController{
		presigner:     presigner,
		bakeryService: bakeryService,
	}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"` // products, bakeries
}

// GeneratePresignedURL 상품/매장 이미지 업로드용 presigned URL 발급
// POST /api/v1/baker/uploads/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req GeneratePresignedURLRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Folder == "" {
		req.Folder = storage.FolderProducts
	}

	// 키는 본인 매장 ID 아래에만 생성
	bakery, err := ctrl.bakeryService.GetByOwner(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "bakery")
		return
	}

	upload, err := ctrl.presigner.PresignImageUpload(c.Request.Context(), req.Folder, bakery.ID, req.Filename, req.ContentType)
	if err != nil {
		respondServiceError(c, err, "upload")
		return
	}

	log.Info("Presigned URL generated", map[string]interface{}{
		"bakery_id": bakery.ID,
		"key":       upload.Key,
	})

	c.JSON(http.StatusOK, upload)
}
