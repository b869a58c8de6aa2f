package lending

import (
	"context"
)

// Repository 借阅仓储接口
// 设计说明:
// 1. 管理loans(在借)、user_books(历史借阅集合)两张关联表,
//    book_readers归book聚合管理
// 2. 所有写方法都必须感知事务上下文:在Transactor.Transaction内
//    调用时,读写走同一个事务连接
type Repository interface {
	// CreateLoan 新增在借记录
	CreateLoan(ctx context.Context, loan *Loan) error

	// DeleteLoan 删除在借记录(还书)
	// 返回删除行数:0表示该用户并未借阅这本书
	DeleteLoan(ctx context.Context, userID, bookID uint) (int64, error)

	// CountLoans 统计用户当前在借数量
	CountLoans(ctx context.Context, userID uint) (int64, error)

	// FindLoansByUser 查询用户当前在借的全部记录
	FindLoansByUser(ctx context.Context, userID uint) ([]*Loan, error)

	// RecordEverBorrowed 记录到历史借阅集合(user_books)
	// 集合语义:重复借阅同一本书不新增行(INSERT IGNORE)
	RecordEverBorrowed(ctx context.Context, userID, bookID uint) error

	// PurgeBook 图书删除时的级联清理:
	// 从loans、user_books中删除该图书的全部行
	// (book_readers的清理在book聚合的Delete内完成)
	PurgeBook(ctx context.Context, bookID uint) error
}

// Transactor 事务边界
// 由infrastructure层的TxManager实现;fn内通过ctx取事务连接,
// fn返回error时整体回滚
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 借阅事件发布接口
// 发布是尽力而为:在事务提交之后调用,失败只记日志不影响业务结果
type EventPublisher interface {
	PublishBookCheckedIn(ctx context.Context, bookID, userID uint)
	PublishBookCheckedOut(ctx context.Context, bookID, userID uint)
	PublishBookDeleted(ctx context.Context, bookID uint)
}
