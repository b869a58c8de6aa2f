package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// GetBookUseCase 查询单本图书用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建查询图书用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 执行查询
// 图书不存在时返回ErrBookNotFound（404），不返回空结果
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID uint) (*BookView, error) {
	b, err := uc.bookService.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return toBookView(b), nil
}
