package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/movietop/internal/repository"
)

// RateMovieForm 评分表单，两个字段都必填
// 评分先按字符串接收，再单独解析成浮点数，解析失败按表单错误处理
type RateMovieForm struct {
	Rating string `form:"rating" binding:"required"`
	Review string `form:"review" binding:"required"`
}

// AddMovieForm 添加电影表单
type AddMovieForm struct {
	Title string `form:"title" binding:"required"`
}

// movieID 从查询参数中取本地电影 ID
func movieID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("无效的电影 ID: %q", c.Query("id"))
	}
	return uint(id), nil
}

// Home 首页，按评分展示收藏的电影
// 列表读取会顺带重写所有记录的排名，不是纯读操作
func (h *Handler) Home(c *gin.Context) {
	movies, err := h.Repos.Movie.ListByRating()
	if err != nil {
		log.Printf("[Home] 查询电影列表失败: %v", err)
		h.renderError(c, http.StatusInternalServerError, "加载电影列表失败")
		return
	}

	c.HTML(http.StatusOK, "index.html", h.RenderData(c, gin.H{
		"Title":  h.Config.SiteName,
		"Movies": movies,
	}))
}

// EditPage 评分表单页
func (h *Handler) EditPage(c *gin.Context) {
	id, err := movieID(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.renderError(c, http.StatusNotFound, "电影不存在")
			return
		}
		log.Printf("[EditPage] 查询电影失败: %v", err)
		h.renderError(c, http.StatusInternalServerError, "加载电影失败")
		return
	}

	c.HTML(http.StatusOK, "edit.html", h.RenderData(c, gin.H{
		"Title": "评分 - " + movie.Title,
		"Movie": movie,
	}))
}

// Edit 提交评分和短评
func (h *Handler) Edit(c *gin.Context) {
	id, err := movieID(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.renderError(c, http.StatusNotFound, "电影不存在")
			return
		}
		log.Printf("[Edit] 查询电影失败: %v", err)
		h.renderError(c, http.StatusInternalServerError, "加载电影失败")
		return
	}

	// 表单错误可恢复：带错误信息重新渲染表单，不写库
	var form RateMovieForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "edit.html", h.RenderData(c, gin.H{
			"Title": "评分 - " + movie.Title,
			"Movie": movie,
			"Error": "评分和短评都不能为空",
		}))
		return
	}

	rating, err := strconv.ParseFloat(form.Rating, 64)
	if err != nil {
		c.HTML(http.StatusOK, "edit.html", h.RenderData(c, gin.H{
			"Title": "评分 - " + movie.Title,
			"Movie": movie,
			"Error": "评分必须是数字，例如 7.5",
		}))
		return
	}

	if err := h.Repos.Movie.UpdateRatingReview(id, rating, form.Review); err != nil {
		log.Printf("[Edit] 更新评分失败: %v", err)
		h.renderError(c, http.StatusInternalServerError, "保存失败")
		return
	}

	h.flash(c, "已保存《"+movie.Title+"》的评分")
	c.Redirect(http.StatusFound, "/")
}

// Delete 删除电影
func (h *Handler) Delete(c *gin.Context) {
	id, err := movieID(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "无效的电影 ID")
		return
	}

	if err := h.Repos.Movie.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.renderError(c, http.StatusNotFound, "电影不存在")
			return
		}
		log.Printf("[Delete] 删除电影失败: %v", err)
		h.renderError(c, http.StatusInternalServerError, "删除失败")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// AddPage 片名输入页
func (h *Handler) AddPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add.html", h.RenderData(c, gin.H{
		"Title": "添加电影",
	}))
}

// Add 按片名搜索 TMDB，渲染候选列表供用户挑选
func (h *Handler) Add(c *gin.Context) {
	var form AddMovieForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "add.html", h.RenderData(c, gin.H{
			"Title": "添加电影",
			"Error": "请输入片名",
		}))
		return
	}

	results, err := h.TMDB.Search(form.Title)
	if err != nil {
		log.Printf("[Add] TMDB 搜索失败: %v", err)
		h.renderError(c, http.StatusBadGateway, "查询电影数据失败，请稍后再试")
		return
	}

	c.HTML(http.StatusOK, "select.html", h.RenderData(c, gin.H{
		"Title":     "选择电影",
		"Results":   results,
		"ImageBase": h.TMDB.ImageBase,
	}))
}

// NewMovie 拉取选中电影的详情并入库，然后跳转到评分页
func (h *Handler) NewMovie(c *gin.Context) {
	externalID, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "无效的电影 ID")
		return
	}

	detail, err := h.TMDB.Detail(externalID)
	if err != nil {
		log.Printf("[NewMovie] TMDB 详情失败: %v", err)
		h.renderError(c, http.StatusBadGateway, "查询电影数据失败，请稍后再试")
		return
	}

	movie, err := h.TMDB.MovieFromDetail(detail)
	if err != nil {
		log.Printf("[NewMovie] 映射电影详情失败: %v", err)
		h.renderError(c, http.StatusBadGateway, "上游电影数据不完整")
		return
	}

	if err := h.Repos.Movie.Create(movie); err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			h.renderError(c, http.StatusConflict, "这部电影已经在收藏里了")
			return
		}
		log.Printf("[NewMovie] 保存电影失败: %v", err)
		h.renderError(c, http.StatusInternalServerError, "保存失败")
		return
	}

	h.flash(c, "已添加《"+movie.Title+"》，给它打个分吧")
	c.Redirect(http.StatusFound, fmt.Sprintf("/edit?id=%d", movie.ID))
}
