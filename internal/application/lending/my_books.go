package lending

import (
	"context"
	"errors"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/lending"
)

// MyBooksUseCase 我的在借图书用例
type MyBooksUseCase struct {
	bookRepo    book.Repository
	lendingRepo lending.Repository
}

// NewMyBooksUseCase 创建我的在借图书用例
func NewMyBooksUseCase(bookRepo book.Repository, lendingRepo lending.Repository) *MyBooksUseCase {
	return &MyBooksUseCase{
		bookRepo:    bookRepo,
		lendingRepo: lendingRepo,
	}
}

// LoanView 在借图书视图
type LoanView struct {
	BookID      uint   `json:"book_id"`
	Title       string `json:"title"`
	CoverPage   string `json:"coverPage"`
	Author      string `json:"author"`
	CheckInDate string `json:"checkInDate"`
}

// Execute 查询当前用户的全部在借图书
func (uc *MyBooksUseCase) Execute(ctx context.Context, userID uint) ([]*LoanView, error) {
	loans, err := uc.lendingRepo.FindLoansByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*LoanView, 0, len(loans))
	for _, loan := range loans {
		b, err := uc.bookRepo.FindByID(ctx, loan.BookID)
		if err != nil {
			// 删书级联清理保证不会有悬空loan;软删除竞争窗口内跳过即可
			if errors.Is(err, book.ErrBookNotFound) {
				continue
			}
			return nil, err
		}

		views = append(views, &LoanView{
			BookID:      b.ID,
			Title:       b.Title,
			CoverPage:   b.CoverURL,
			Author:      b.Author,
			CheckInDate: loan.CheckInDate.Format("2006-01-02"),
		})
	}

	return views, nil
}
