package handlers

import (
	"context"
	"errors"
	"net/http"

	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errRequestTimeout = common.NewError(common.ErrCodeGatewayTimeout, "request timeout", http.StatusGatewayTimeout, nil)
	errCanceled       = common.NewError(common.ErrCodeRequestTimeout, "request canceled", http.StatusRequestTimeout, nil)
)

// RespondError 將錯誤轉為統一的 JSON 錯誤響應
func RespondError(c *gin.Context, err error) {
	var ce *common.CustomError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		ce = errRequestTimeout.Wrap(err)
	case errors.Is(err, context.Canceled):
		ce = errCanceled.Wrap(err)
	default:
		ce = common.AsCustomError(err)
	}

	resp := common.ErrorResponse{
		Code:      ce.Code,
		Message:   ce.Message,
		RequestID: requestid.Get(c),
	}
	if ce.Status < http.StatusInternalServerError && ce.Err != nil {
		resp.Details = ce.Err.Error()
	}
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("request failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", resp.RequestID),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, resp)
}

// BindJSON 嚴格解析 JSON 請求體（不允許未知欄位），失敗時回應 400 並回傳 false
func BindJSON(c *gin.Context, v interface{}) bool {
	if err := common.DecodeJSONStrict(c.Request.Body, v); err != nil {
		RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return false
	}
	return true
}
