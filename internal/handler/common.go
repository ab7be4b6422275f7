package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// 認證不在本服務範圍：呼叫端身份由前置的閘道放進 header
	HeaderPassengerID = "X-Passenger-ID"
	HeaderOperatorID  = "X-Operator-ID"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// PassengerID 取出乘客身份，沒有或格式錯誤時直接回 401
func PassengerID(c *gin.Context) (int, bool) {
	return identityHeader(c, HeaderPassengerID)
}

// OperatorID 取出站務員身份，沒有或格式錯誤時直接回 401
func OperatorID(c *gin.Context) (int, bool) {
	return identityHeader(c, HeaderOperatorID)
}

func identityHeader(c *gin.Context, header string) (int, bool) {
	value := c.GetHeader(header)
	id, err := strconv.Atoi(value)
	if value == "" || err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Missing or invalid " + header + " header",
		})
		return 0, false
	}
	return id, true
}
