package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/movietop/internal/model"
)

func newTestRepo(t *testing.T) *MovieRepository {
	t.Helper()

	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}
	return NewMovieRepository(db)
}

func seedMovie(t *testing.T, repo *MovieRepository, title string, year int) *model.Movie {
	t.Helper()

	movie := &model.Movie{
		Title:       title,
		Year:        year,
		Description: "描述：" + title,
		ImgURL:      "https://image.tmdb.org/t/p/w500/" + title + ".jpg",
	}
	if err := repo.Create(movie); err != nil {
		t.Fatalf("创建电影 %q 失败: %v", title, err)
	}
	return movie
}

func TestCreateRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	created := seedMovie(t, repo, "X", 2000)

	got, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("查询电影失败: %v", err)
	}
	if got.Title != "X" || got.Year != 2000 {
		t.Errorf("字段不匹配: %+v", got)
	}
	// 新增的记录尚未打分
	if got.Rating != nil {
		t.Errorf("rating 应为空，得到 %v", *got.Rating)
	}
	if got.Review != nil {
		t.Errorf("review 应为空，得到 %v", *got.Review)
	}
}

func TestCreateDuplicateTitle(t *testing.T) {
	repo := newTestRepo(t)

	seedMovie(t, repo, "Inception", 2010)

	dup := &model.Movie{Title: "Inception", Year: 2010, Description: "d", ImgURL: "u"}
	if err := repo.Create(dup); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("重复片名应返回 ErrDuplicateTitle，得到 %v", err)
	}

	// 库里仍然只有一条
	movies, err := repo.ListByRating()
	if err != nil {
		t.Fatalf("查询列表失败: %v", err)
	}
	if len(movies) != 1 {
		t.Errorf("应只有 1 条记录，得到 %d", len(movies))
	}
}

func TestListByRatingRewritesRanking(t *testing.T) {
	repo := newTestRepo(t)

	a := seedMovie(t, repo, "A", 2001)
	b := seedMovie(t, repo, "B", 2002)
	c := seedMovie(t, repo, "C", 2003)

	for _, tc := range []struct {
		id     uint
		rating float64
	}{
		{a.ID, 7.0},
		{b.ID, 9.0},
		{c.ID, 5.0},
	} {
		if err := repo.UpdateRatingReview(tc.id, tc.rating, "还行"); err != nil {
			t.Fatalf("更新评分失败: %v", err)
		}
	}

	movies, err := repo.ListByRating()
	if err != nil {
		t.Fatalf("查询列表失败: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("应有 3 条记录，得到 %d", len(movies))
	}

	// 升序：C(5.0) A(7.0) B(9.0)，评分最高的排名等于总数
	wantOrder := []string{"C", "A", "B"}
	for i, want := range wantOrder {
		if movies[i].Title != want {
			t.Errorf("第 %d 位应是 %s，得到 %s", i, want, movies[i].Title)
		}
		if movies[i].Ranking == nil || *movies[i].Ranking != i+1 {
			t.Errorf("%s 的排名应为 %d，得到 %v", movies[i].Title, i+1, movies[i].Ranking)
		}
	}

	// 排名已持久化
	got, err := repo.FindByID(b.ID)
	if err != nil {
		t.Fatalf("查询电影失败: %v", err)
	}
	if got.Ranking == nil || *got.Ranking != 3 {
		t.Errorf("B 的持久化排名应为 3，得到 %v", got.Ranking)
	}
}

func TestUpdateMissingID(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.UpdateRatingReview(999, 8.0, "好看"); !errors.Is(err, ErrNotFound) {
		t.Errorf("更新不存在的 ID 应返回 ErrNotFound，得到 %v", err)
	}
}

func TestDeleteMissingID(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Delete(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("删除不存在的 ID 应返回 ErrNotFound，得到 %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)

	movie := seedMovie(t, repo, "A", 2001)
	if err := repo.Delete(movie.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := repo.FindByID(movie.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("删除后查询应返回 ErrNotFound，得到 %v", err)
	}
}
