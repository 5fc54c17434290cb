package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/user/movietop/internal/config"
	"github.com/user/movietop/internal/model"
	"golang.org/x/sync/singleflight"
)

const (
	tmdbAPIBase   = "https://api.themoviedb.org/3"
	tmdbImageBase = "https://image.tmdb.org/t/p/w500"
)

// SearchResult TMDB 搜索接口返回的单条候选
type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}

// MovieDetail TMDB 详情接口返回的字段
type MovieDetail struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}

// TMDBService 负责对 TMDB 的两类出站请求：按片名搜索、按 ID 拉取详情
type TMDBService struct {
	config *config.Config
	group  singleflight.Group

	// 基础地址做成字段，测试时指向 httptest 桩服务
	APIBase   string
	ImageBase string
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		config:    cfg,
		APIBase:   tmdbAPIBase,
		ImageBase: tmdbImageBase,
	}
}

type tmdbSearchResponse struct {
	Results []SearchResult `json:"results"`
}

// Search 按片名搜索电影
// api_key 走查询参数，同时带 Bearer 头（TMDB 两种认证都接受）
func (s *TMDBService) Search(query string) ([]SearchResult, error) {
	u := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s",
		s.APIBase, url.QueryEscape(s.config.TMDBAPIKey), url.QueryEscape(query))

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.TMDBToken)
	req.Header.Set("Content-Type", "application/json;charset=utf-8")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TMDB 搜索请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB 搜索返回状态码: %d", resp.StatusCode)
	}

	var result tmdbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("解析搜索响应失败: %w", err)
	}

	return result.Results, nil
}

// Detail 按 TMDB ID 拉取电影详情
// 使用 singleflight 避免同一 ID 的并发重复请求
func (s *TMDBService) Detail(id int) (*MovieDetail, error) {
	val, err, _ := s.group.Do(strconv.Itoa(id), func() (interface{}, error) {
		return s.fetchDetail(id)
	})
	if err != nil {
		return nil, err
	}
	return val.(*MovieDetail), nil
}

func (s *TMDBService) fetchDetail(id int) (*MovieDetail, error) {
	// 详情接口只用 URL 中的 api_key 认证
	u := fmt.Sprintf("%s/movie/%d?api_key=%s", s.APIBase, id, url.QueryEscape(s.config.TMDBAPIKey))

	resp, err := http.Get(u)
	if err != nil {
		return nil, fmt.Errorf("TMDB 详情请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB 详情返回状态码: %d", resp.StatusCode)
	}

	var detail MovieDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("解析详情响应失败: %w", err)
	}

	return &detail, nil
}

// MovieFromDetail 把 TMDB 详情映射为本地电影记录
// 年份取 release_date 前四位；日期缺失或海报缺失视为上游数据不完整
func (s *TMDBService) MovieFromDetail(detail *MovieDetail) (*model.Movie, error) {
	if len(detail.ReleaseDate) < 4 {
		return nil, fmt.Errorf("上映日期缺失或格式异常: %q", detail.ReleaseDate)
	}
	year, err := strconv.Atoi(detail.ReleaseDate[:4])
	if err != nil {
		return nil, fmt.Errorf("解析年份失败: %w", err)
	}

	if detail.PosterPath == "" {
		return nil, fmt.Errorf("电影 %d 缺少海报", detail.ID)
	}

	return &model.Movie{
		Title:       detail.Title,
		Year:        year,
		Description: detail.Overview,
		ImgURL:      s.ImageBase + detail.PosterPath,
	}, nil
}
