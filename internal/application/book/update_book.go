package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// UpdateBookUseCase 更新图书用例（管理员）
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 更新图书请求
// 部分更新语义：空字段保留原值
type UpdateBookRequest struct {
	IsAdmin         bool
	BookID          uint
	Title           string
	CoverPage       string
	Author          string
	Genre           string
	PublicationDate string
	Bio             string
}

// Execute 执行更新图书
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookView, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.IsAdmin, req.BookID,
		req.Title, req.CoverPage, req.Author, req.Genre, req.PublicationDate, req.Bio)
	if err != nil {
		return nil, err
	}

	return toBookView(b), nil
}
