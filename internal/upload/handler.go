package upload

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"blogiq-backend/internal/config"
	"blogiq-backend/internal/logger"
	"blogiq-backend/pkg/utils"
)

const maxImageBytes = 10 << 20

type Handler struct {
	dir    string
	client *http.Client
}

func NewHandler(cfg *config.UploadConfig) *Handler {
	return &Handler{
		dir: cfg.Dir,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload", h.UploadImage)
	router.POST("/upload-url", h.UploadImageFromURL)
}

// uniqueName prefixes the original filename so concurrent uploads of the
// same file never collide.
func uniqueName(original string) string {
	base := filepath.Base(original)
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.New().String()[:8], base)
}

func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "No image provided")
		return
	}

	if file.Size > maxImageBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}

	fileName := uniqueName(file.Filename)
	dst := filepath.Join(h.dir, fileName)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Error("Failed to store uploaded image", zap.String("file", fileName), zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Image upload failed")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Image has been uploaded successfully!", gin.H{
		"fileName": fileName,
	})
}

type uploadURLRequest struct {
	ImageURL string `json:"imageUrl"`
}

func (h *Handler) UploadImageFromURL(c *gin.Context) {
	var request uploadURLRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.ImageURL == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "No image URL provided")
		return
	}

	parsed, err := url.Parse(request.ImageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid image URL")
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, request.ImageURL, nil)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid image URL")
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Image download failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Image download failed")
		return
	}

	ext := filepath.Ext(parsed.Path)
	fileName := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
	dst := filepath.Join(h.dir, fileName)

	out, err := os.Create(dst)
	if err != nil {
		logger.Error("Failed to create image file", zap.String("file", fileName), zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Image upload failed")
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, io.LimitReader(resp.Body, maxImageBytes)); err != nil {
		_ = os.Remove(dst)
		logger.Error("Failed to store downloaded image", zap.String("file", fileName), zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Image upload failed")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Image has been uploaded successfully!", gin.H{
		"fileName": fileName,
	})
}

// EnsureDir creates the upload directory if it does not exist.
func EnsureDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("upload directory is not configured")
	}
	return os.MkdirAll(dir, 0o755)
}
