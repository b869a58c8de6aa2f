package lending

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/lending"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// CheckOutUseCase 还书用例
type CheckOutUseCase struct {
	bookRepo    book.Repository
	lendingRepo lending.Repository
	tx          lending.Transactor
	publisher   lending.EventPublisher
}

// NewCheckOutUseCase 创建还书用例
func NewCheckOutUseCase(
	bookRepo book.Repository,
	lendingRepo lending.Repository,
	tx lending.Transactor,
	publisher lending.EventPublisher,
) *CheckOutUseCase {
	return &CheckOutUseCase{
		bookRepo:    bookRepo,
		lendingRepo: lendingRepo,
		tx:          tx,
		publisher:   publisher,
	}
}

// CheckOutRequest 还书请求DTO
type CheckOutRequest struct {
	BookID uint
	UserID uint // 从JWT中提取
}

// Execute 执行还书
// 事务内三步:
// 1. 图书必须存在(不存在→404)
// 2. 删除本人的在借记录;删除行数为0说明这本书不在该用户手里,
//    返回"未借阅该图书"(与图书不存在是两个不同的错误)
// 3. 释放图书(available=1, holder置空)
// 历史借阅集合(user_books)不动:曾经借过的记录永久保留
func (uc *CheckOutUseCase) Execute(ctx context.Context, req CheckOutRequest) error {
	ctx, span := tracing.StartSpan(ctx, "library-api", "lending.CheckOut")
	defer span.End()

	start := time.Now()

	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookRepo.FindByID(txCtx, req.BookID); err != nil {
			return err
		}

		deleted, err := uc.lendingRepo.DeleteLoan(txCtx, req.UserID, req.BookID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return lending.ErrLoanNotFound
		}

		return uc.bookRepo.Release(txCtx, req.BookID)
	})

	if metrics.LendingDuration != nil {
		metrics.LendingDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	if metrics.CheckOutsTotal != nil {
		metrics.CheckOutsTotal.Inc()
		metrics.BooksOnLoan.Dec()
	}

	uc.publisher.PublishBookCheckedOut(ctx, req.BookID, req.UserID)

	return nil
}
