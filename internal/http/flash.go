package http

import "github.com/gin-gonic/gin"

const flashCookie = "watchlist_flash"

// User-facing notices, verbatim from the original application.
const (
	flashMovieCreated     = "已创建一条清单"
	flashMovieUpdated     = "该条清单更新成功"
	flashMovieDeleted     = "该条清单已删除"
	flashBadFormat        = "输入格式错误 -- 数据太短或是超长"
	flashLoginOK          = "登录成功"
	flashEmptyCredentials = "输入的数据不能为空"
	flashBadCredentials   = "验证失败，输入的用户名或密码错误"
	flashLogout           = "拜拜"
	flashNameUpdated      = "用户名更改成功"
	flashBadName          = "无效的输入"
	flashMessageSent      = "您的消息已发送给全世界！"
	flashLoginRequired    = "请先登录."
)

// setFlash queues a one-shot notice for the next rendered page.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 60, "/", "", false, true)
}

// takeFlash consumes pending notices. Reading clears the cookie so a
// notice shows exactly once and never leaks into later responses.
func takeFlash(c *gin.Context) []string {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return []string{raw}
}
