package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/lending"
)

// DeleteBookUseCase 删除图书用例（管理员）
// 设计说明:
// 1. 删除不只是books表一行:在借记录、历史借阅集合都要级联清理,
//    否则用户的书单会残留悬空ID
// 2. 整个级联在一个事务里,任一步失败全部回滚
// 3. 提交后发布book.deleted事件(尽力而为)
type DeleteBookUseCase struct {
	bookRepo    book.Repository
	lendingRepo lending.Repository
	tx          lending.Transactor
	publisher   lending.EventPublisher
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(
	bookRepo book.Repository,
	lendingRepo lending.Repository,
	tx lending.Transactor,
	publisher lending.EventPublisher,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:    bookRepo,
		lendingRepo: lendingRepo,
		tx:          tx,
		publisher:   publisher,
	}
}

// DeleteBookRequest 删除图书请求
type DeleteBookRequest struct {
	IsAdmin bool
	BookID  uint
}

// Execute 执行删除图书
func (uc *DeleteBookUseCase) Execute(ctx context.Context, req DeleteBookRequest) error {
	// 1. 授权检查
	if !req.IsAdmin {
		return book.ErrNotAdmin
	}

	// 2. 事务内删除并级联清理
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 图书不存在时直接返回,不触碰任何用户数据
		if err := uc.bookRepo.Delete(txCtx, req.BookID); err != nil {
			return err
		}

		// 从所有用户的在借记录和历史借阅集合中移除
		return uc.lendingRepo.PurgeBook(txCtx, req.BookID)
	})
	if err != nil {
		return err
	}

	// 3. 事务提交后发布事件
	uc.publisher.PublishBookDeleted(ctx, req.BookID)

	return nil
}
