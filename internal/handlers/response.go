package handlers

import (
	"errors"
	"net/http"
	"strings"

	"delipucash/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ResponseHandler 回答的赞、踩、回复接口
type ResponseHandler struct {
	reactions  *services.ReactionService
	replies    *services.ReplyService
	aggregates *services.AggregateService
	errors     *ErrorWriter
}

func NewResponseHandler(reactions *services.ReactionService, replies *services.ReplyService, aggregates *services.AggregateService, errs *ErrorWriter) *ResponseHandler {
	return &ResponseHandler{
		reactions:  reactions,
		replies:    replies,
		aggregates: aggregates,
		errors:     errs,
	}
}

type likeRequest struct {
	UserID  string `json:"userId" binding:"required"`
	IsLiked bool   `json:"isLiked"`
}

type dislikeRequest struct {
	UserID     string `json:"userId" binding:"required"`
	IsDisliked bool   `json:"isDisliked"`
}

// replyRequest 的 userId 由服务层在内容校验之后检查
type replyRequest struct {
	UserID    string `json:"userId"`
	ReplyText string `json:"replyText"`
}

// Like POST /:responseId/like
func (h *ResponseHandler) Like(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindMessage(err))
		return
	}

	result, err := h.reactions.SetLike(c.Request.Context(), c.Param("responseId"), req.UserID, req.IsLiked)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Dislike POST /:responseId/dislike
func (h *ResponseHandler) Dislike(c *gin.Context) {
	var req dislikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindMessage(err))
		return
	}

	result, err := h.reactions.SetDislike(c.Request.Context(), c.Param("responseId"), req.UserID, req.IsDisliked)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateReply POST /:responseId/replies
func (h *ResponseHandler) CreateReply(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindMessage(err))
		return
	}

	result, err := h.replies.SubmitReply(c.Request.Context(), c.Param("responseId"), req.UserID, req.ReplyText)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Reply posted successfully",
		"reply":      result.Reply,
		"replyCount": result.ReplyCount,
	})
}

// ListReplies GET /:responseId/replies
func (h *ResponseHandler) ListReplies(c *gin.Context) {
	replies, err := h.replies.ListReplies(c.Request.Context(), c.Param("responseId"))
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"replies": replies,
		"count":   len(replies),
	})
}

// Detail GET /:responseId?userId=
func (h *ResponseHandler) Detail(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))

	view, err := h.aggregates.GetAggregate(c.Request.Context(), c.Param("responseId"), userID)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// bindMessage 只区分缺少 userId 和请求体格式错误两种情况
func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "UserID" {
				return "userId is required"
			}
		}
	}
	return "Invalid request body"
}
