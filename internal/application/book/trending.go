package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// TrendingUseCase 热门榜单用例
type TrendingUseCase struct {
	bookService book.Service
}

// NewTrendingUseCase 创建热门榜单用例
func NewTrendingUseCase(bookService book.Service) *TrendingUseCase {
	return &TrendingUseCase{bookService: bookService}
}

// TrendingItem 榜单条目
// ReadersCount按借阅次数计,同一人重复借阅重复计数
type TrendingItem struct {
	Title        string `json:"title"`
	CoverPage    string `json:"coverPage"`
	ReadersCount int64  `json:"readersCount"`
}

// Execute 执行查询（按历史借阅次数降序取前5）
func (uc *TrendingUseCase) Execute(ctx context.Context) ([]*TrendingItem, error) {
	entries, err := uc.bookService.Trending(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*TrendingItem, len(entries))
	for i, e := range entries {
		items[i] = &TrendingItem{
			Title:        e.Title,
			CoverPage:    e.CoverURL,
			ReadersCount: e.ReadersCount,
		}
	}
	return items, nil
}
