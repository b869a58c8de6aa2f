package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// SearchBooksUseCase 书名搜索用例
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// Execute 执行搜索
// 零命中返回ErrNoSearchHits（404），不返回空数组
func (uc *SearchBooksUseCase) Execute(ctx context.Context, fragment string) ([]*BookView, error) {
	books, err := uc.bookService.SearchByTitle(ctx, fragment)
	if err != nil {
		return nil, err
	}

	return toBookViews(books), nil
}
