package repository

import (
	"errors"
	"fmt"

	"github.com/user/movietop/internal/model"
	"gorm.io/gorm"
)

// ErrNotFound 指定 ID 的电影不存在
var ErrNotFound = errors.New("电影不存在")

// ErrDuplicateTitle 片名已存在（title 列有唯一索引）
var ErrDuplicateTitle = errors.New("片名已存在")

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// ListByRating 按评分升序返回全部电影，并重写每条记录的 ranking
// 排名规则：升序第 i 位（从 0 起）写入 i+1，评分最高的电影排名等于总数
// 未打分的记录按 SQLite 对 NULL 的默认排序落在最前面
func (r *MovieRepository) ListByRating() ([]model.Movie, error) {
	var movies []model.Movie

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("rating").Find(&movies).Error; err != nil {
			return err
		}

		for i := range movies {
			ranking := i + 1
			movies[i].Ranking = &ranking
			if err := tx.Model(&movies[i]).Update("ranking", ranking).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("刷新排名失败: %w", err)
	}

	return movies, nil
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(id uint) (*model.Movie, error) {
	var movie model.Movie
	if err := r.db.First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

// Create 新增电影，rating/review/ranking 保持为空
func (r *MovieRepository) Create(movie *model.Movie) error {
	if err := r.db.Create(movie).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTitle
		}
		return err
	}
	return nil
}

// UpdateRatingReview 更新评分和短评
func (r *MovieRepository) UpdateRatingReview(id uint, rating float64, review string) error {
	result := r.db.Model(&model.Movie{}).Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "review": review})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 根据 ID 删除电影
func (r *MovieRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Movie{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
