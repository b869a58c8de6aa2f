package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookUseCase 新增图书用例（管理员）
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 新增图书请求
// IsAdmin是上游认证中间件解析出的授权决策，随请求显式传入
type CreateBookRequest struct {
	IsAdmin         bool
	Title           string
	CoverPage       string
	Author          string
	Genre           string
	PublicationDate string
	Bio             string
}

// Execute 执行新增图书
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookView, error) {
	b, err := uc.bookService.CreateBook(ctx, req.IsAdmin,
		req.Title, req.CoverPage, req.Author, req.Genre, req.PublicationDate, req.Bio)
	if err != nil {
		return nil, err
	}

	return toBookView(b), nil
}
