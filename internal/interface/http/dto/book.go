package dto

// CreateBookRequest HTTP新增图书请求
// binding tag说明:
// - required: 必填字段(bio是唯一的可选字段)
// - max: 长度上限,与数据库列宽一致
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,max=200" example:"百年孤独"`
	CoverPage       string `json:"coverPage" binding:"required,url,max=500" example:"https://example.com/cover.jpg"`
	Author          string `json:"author" binding:"required,max=100" example:"加西亚·马尔克斯"`
	Genre           string `json:"genre" binding:"required,max=50" example:"小说"`
	PublicationDate string `json:"publicationDate" binding:"required,max=32" example:"1967-05-30"`
	Bio             string `json:"bio" binding:"max=5000" example:"魔幻现实主义文学代表作"`
}

// UpdateBookRequest HTTP更新图书请求
// 部分更新:省略或传空字符串的字段保留原值
type UpdateBookRequest struct {
	Title           string `json:"title" binding:"omitempty,max=200"`
	CoverPage       string `json:"coverPage" binding:"omitempty,url,max=500"`
	Author          string `json:"author" binding:"omitempty,max=100"`
	Genre           string `json:"genre" binding:"omitempty,max=50"`
	PublicationDate string `json:"publicationDate" binding:"omitempty,max=32"`
	Bio             string `json:"bio" binding:"omitempty,max=5000"`
}

// CheckInRequest HTTP借书请求
// checkInDate可选,格式2006-01-02,用于补录线下借阅
type CheckInRequest struct {
	CheckInDate string `json:"checkInDate" binding:"omitempty,datetime=2006-01-02" example:"2024-06-01"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID              uint   `json:"id" example:"1"`
	Title           string `json:"title" example:"百年孤独"`
	CoverPage       string `json:"coverPage" example:"https://example.com/cover.jpg"`
	Author          string `json:"author" example:"加西亚·马尔克斯"`
	Genre           string `json:"genre" example:"小说"`
	PublicationDate string `json:"publicationDate" example:"1967-05-30"`
	Bio             string `json:"bio,omitempty" example:"魔幻现实主义文学代表作"`
	Available       bool   `json:"available" example:"true"`
	Holder          string `json:"holder,omitempty" example:"alice"`
	CreatedAt       string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt       string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// TrendingItemResponse 热门榜单条目
type TrendingItemResponse struct {
	Title        string `json:"title" example:"百年孤独"`
	CoverPage    string `json:"coverPage" example:"https://example.com/cover.jpg"`
	ReadersCount int64  `json:"readersCount" example:"42"`
}

// LoanResponse 在借图书条目
type LoanResponse struct {
	BookID      uint   `json:"book_id" example:"1"`
	Title       string `json:"title" example:"百年孤独"`
	CoverPage   string `json:"coverPage" example:"https://example.com/cover.jpg"`
	Author      string `json:"author" example:"加西亚·马尔克斯"`
	CheckInDate string `json:"checkInDate" example:"2024-06-01"`
}
