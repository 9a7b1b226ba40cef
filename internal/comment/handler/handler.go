package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"blogiq-backend/internal/comment/model"
	"blogiq-backend/internal/comment/service"
	"blogiq-backend/internal/logger"
	"blogiq-backend/internal/middleware"
	appErrors "blogiq-backend/pkg/errors"
	"blogiq-backend/pkg/utils"
)

type CommentHandler struct {
	service *service.CommentService
}

func NewHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/comments/post/:postId", h.ListComments)
}

func (h *CommentHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	comments := router.Group("/comments")
	{
		comments.POST("", h.CreateComment)
		comments.PUT("/:id", h.UpdateComment)
		comments.DELETE("/:id", h.DeleteComment)
	}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request model.CreateCommentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Comment = utils.SanitizeText(request.Comment)

	comment, err := h.service.CreateComment(c.Request.Context(), claims.UserID, claims.Username, &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Comment created successfully", comment)
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), postID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comments retrieved successfully", comments)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	var request model.UpdateCommentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Comment = utils.SanitizeText(request.Comment)

	comment, err := h.service.UpdateComment(c.Request.Context(), commentID, claims.UserID, &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment updated successfully", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), commentID, claims.UserID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment deleted successfully", nil)
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrCommentNotFound),
		errors.Is(err, appErrors.ErrPostNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrNotOwner):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
