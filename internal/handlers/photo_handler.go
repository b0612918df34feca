package handlers

import (
	"mime/multipart"
	"net/http"

	"treinai_backend/internal/middleware"
	"treinai_backend/internal/services"
	"treinai_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	*BaseHandler
	photoService services.PhotoService
}

func NewPhotoHandler(base *BaseHandler, photoService services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		BaseHandler:  base,
		photoService: photoService,
	}
}

func (h *PhotoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authed := rg.Group("")
	authed.Use(middleware.AuthMiddleware(), middleware.UserContextMiddleware())
	{
		authed.GET("/students/:studentID/photos", h.List)
		authed.POST("/students/:studentID/photos", h.Upload)
		authed.POST("/students/:studentID/photos/compare", h.UploadComparison)
		authed.DELETE("/photos/:photoID", h.Delete)
		authed.DELETE("/comparisons/:comparisonID", h.DeleteComparison)
	}
}

func (h *PhotoHandler) Upload(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	upload, closeFn, ok := h.openUpload(c, "photo")
	if !ok {
		return
	}
	defer closeFn()

	resp, err := h.photoService.UploadPhoto(c.Request.Context(), requesterID, h.GetRole(c), c.Param("studentID"), upload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PhotoHandler) UploadComparison(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	before, closeBefore, ok := h.openUpload(c, "before")
	if !ok {
		return
	}
	defer closeBefore()

	after, closeAfter, ok := h.openUpload(c, "after")
	if !ok {
		return
	}
	defer closeAfter()

	resp, err := h.photoService.UploadComparison(c.Request.Context(), requesterID, h.GetRole(c), c.Param("studentID"), before, after)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PhotoHandler) List(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.photoService.ListPhotos(c.Request.Context(), requesterID, h.GetRole(c), c.Param("studentID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PhotoHandler) Delete(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), requesterID, h.GetRole(c), c.Param("photoID")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo removed"})
}

func (h *PhotoHandler) DeleteComparison(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.photoService.DeleteComparison(c.Request.Context(), requesterID, h.GetRole(c), c.Param("comparisonID")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comparison removed"})
}

// openUpload pulls one multipart file field into a service upload.
func (h *PhotoHandler) openUpload(c *gin.Context, field string) (*services.PhotoUpload, func(), bool) {
	header, err := c.FormFile(field)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file field: "+field))
		return nil, nil, false
	}

	file, err := header.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return nil, nil, false
	}

	return &services.PhotoUpload{
		Reader:      file,
		Size:        header.Size,
		ContentType: contentTypeOf(header),
	}, func() { file.Close() }, true
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
