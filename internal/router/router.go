package router

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/movietop/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 收藏列表 ====================
	r.GET("/", h.Home)

	// ==================== 评分 / 删除 ====================
	r.GET("/edit", h.EditPage)
	r.POST("/edit", h.Edit)
	r.GET("/delete", h.Delete)

	// ==================== 添加电影 ====================
	r.GET("/add", h.AddPage)
	r.POST("/add", h.Add)
	r.GET("/new_movie", h.NewMovie)
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	// 获取布局模板
	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表：布局在前，页面在后
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	// 注册所有页面模板
	pages := []string{
		"index.html",
		"edit.html",
		"add.html",
		"select.html",
		"error.html",
	}
	for _, page := range pages {
		r.AddFromFiles(page, assemble(filepath.Join(templatesDir, page))...)
	}

	return r
}
