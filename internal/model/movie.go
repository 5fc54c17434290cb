package model

// Movie 电影收藏记录
// Rating/Ranking/Review 在新增时为空，用户打分后才会填充，因此使用指针表示可空列
type Movie struct {
	ID          uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string   `json:"title" gorm:"size:80;uniqueIndex;not null"`
	Year        int      `json:"year" gorm:"not null"`
	Description string   `json:"description" gorm:"size:250;not null"`
	Rating      *float64 `json:"rating"`
	Ranking     *int     `json:"ranking"`
	Review      *string  `json:"review" gorm:"size:250"`
	ImgURL      string   `json:"img_url" gorm:"not null"`
}
