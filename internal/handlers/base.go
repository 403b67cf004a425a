package handlers

import (
	"errors"
	"net/http"

	"delipucash/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorWriter 把服务层错误映射成 HTTP 状态码和 {message, error?} 响应体
type ErrorWriter struct {
	log logrus.FieldLogger
	// 生产环境不返回底层错误细节
	exposeDetail bool
}

func NewErrorWriter(log logrus.FieldLogger, production bool) *ErrorWriter {
	return &ErrorWriter{log: log, exposeDetail: !production}
}

func (w *ErrorWriter) Write(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var persistence *services.PersistenceError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound.Error()})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": services.InvalidInputMessage(err)})
	case errors.As(err, &persistence):
		w.log.WithError(persistence.Err).WithField("path", c.Request.URL.Path).Error(persistence.Op)
		w.internal(c, persistence.Op, persistence.Err)
	default:
		w.log.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled error")
		w.internal(c, "Internal Server Error", err)
	}
}

func (w *ErrorWriter) internal(c *gin.Context, message string, cause error) {
	body := gin.H{"message": message}
	if w.exposeDetail && cause != nil {
		body["error"] = cause.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// BadRequest 请求体本身不合法（JSON 解析失败、缺字段）
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
