package handler

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/movietop/internal/config"
	"github.com/user/movietop/internal/repository"
	"github.com/user/movietop/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
	TMDB   *service.TMDBService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:  repos,
		Config: cfg,
		TMDB:   service.NewTMDBService(cfg),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"Path":     c.Request.URL.Path,
	}

	// 注入 flash 消息
	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		session.Save()
		res["Flash"] = flashes[0]
	}

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// flash 写入一条 flash 消息，下一次页面渲染时展示
func (h *Handler) flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	session.Save()
}

// renderError 渲染通用错误页
func (h *Handler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", h.RenderData(c, gin.H{
		"Title":   "出错了",
		"Message": message,
	}))
}
