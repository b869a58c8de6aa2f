package book

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// BookView 图书视图（应用层DTO）
// 各查询/管理用例共用的响应结构
type BookView struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	CoverPage       string `json:"coverPage"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationDate string `json:"publicationDate"`
	Bio             string `json:"bio,omitempty"`
	Available       bool   `json:"available"`
	Holder          string `json:"holder,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// toBookView 领域实体 → 视图DTO
func toBookView(b *book.Book) *BookView {
	return &BookView{
		ID:              b.ID,
		Title:           b.Title,
		CoverPage:       b.CoverURL,
		Author:          b.Author,
		Genre:           b.Genre,
		PublicationDate: b.PublicationDate,
		Bio:             b.Bio,
		Available:       b.Available,
		Holder:          b.Holder,
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// toBookViews 批量转换
func toBookViews(books []*book.Book) []*BookView {
	views := make([]*BookView, len(books))
	for i, b := range books {
		views[i] = toBookView(b)
	}
	return views
}
