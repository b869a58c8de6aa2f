package lending

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/lending"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// CheckInUseCase 借书用例
// 设计说明:这是整个项目最核心的用例
// 涉及:事务处理、条件更新并发控制、多表联动
type CheckInUseCase struct {
	userRepo    user.Repository
	bookRepo    book.Repository
	lendingRepo lending.Repository
	tx          lending.Transactor
	publisher   lending.EventPublisher
}

// NewCheckInUseCase 创建借书用例
func NewCheckInUseCase(
	userRepo user.Repository,
	bookRepo book.Repository,
	lendingRepo lending.Repository,
	tx lending.Transactor,
	publisher lending.EventPublisher,
) *CheckInUseCase {
	return &CheckInUseCase{
		userRepo:    userRepo,
		bookRepo:    bookRepo,
		lendingRepo: lendingRepo,
		tx:          tx,
		publisher:   publisher,
	}
}

// CheckInRequest 借书请求DTO
type CheckInRequest struct {
	BookID      uint
	UserID      uint      // 从JWT中提取
	CheckInDate time.Time // 可选,零值时取当前时间(支持补录线下借阅)
}

// Execute 执行借书
//
// 核心问题:同一本书被两个人同时借走
// 场景:图书只有一个副本,两个请求同时到达
// 错误实现:
//  1. 查询图书 → available=true
//  2. 判断可借 → 可借
//  3. 置为借出 → available=false
//     两个请求都通过了步骤2,书同时进了两个人的书单
//
// 正确实现:条件更新
//  1. UPDATE books SET available=0, holder=? WHERE id=? AND available=1
//  2. 影响行数为0 → 已被别人抢先,返回冲突
//  3. 影响行数为1 → 借出成功,继续写入关联表
//
// 全部写入在一个事务里:任一步失败整体回滚,
// 不会出现"书已置为借出但书单里没有"的中间状态
func (uc *CheckInUseCase) Execute(ctx context.Context, req CheckInRequest) error {
	ctx, span := tracing.StartSpan(ctx, "library-api", "lending.CheckIn")
	defer span.End()

	start := time.Now()

	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:解析借阅人(holder字段存用户名)
		// ========================================
		u, err := uc.userRepo.FindByID(txCtx, req.UserID)
		if err != nil {
			return err
		}

		// ========================================
		// 步骤2:图书必须存在
		// 先查一次以区分"不存在"(404)与"已被借走"(409)
		// ========================================
		if _, err := uc.bookRepo.FindByID(txCtx, req.BookID); err != nil {
			return err
		}

		// ========================================
		// 步骤3:在借数量上限校验
		// ========================================
		count, err := uc.lendingRepo.CountLoans(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if count >= lending.MaxCurrentBooks {
			return lending.ErrLoanLimitExceeded
		}

		// ========================================
		// 步骤4:条件更新抢占图书(唯一的借出路径)
		// ========================================
		acquired, err := uc.bookRepo.Acquire(txCtx, req.BookID, u.Username)
		if err != nil {
			return err
		}
		if !acquired {
			return lending.ErrBookUnavailable
		}

		// ========================================
		// 步骤5:写入三张关联表
		// ========================================
		// 借阅历史:追加,重复借阅重复计数
		if err := uc.bookRepo.AppendReader(txCtx, req.BookID, req.UserID); err != nil {
			return err
		}

		// 在借记录:借出日期缺省取当前时间
		loan := lending.NewLoan(req.UserID, req.BookID, req.CheckInDate)
		if err := uc.lendingRepo.CreateLoan(txCtx, loan); err != nil {
			return err
		}

		// 历史借阅集合:INSERT IGNORE,重复借阅不新增
		return uc.lendingRepo.RecordEverBorrowed(txCtx, req.UserID, req.BookID)
	})

	uc.record(err, start)
	if err != nil {
		span.RecordError(err)
		return err
	}

	// 事务提交后发布事件(尽力而为,失败不影响业务结果)
	uc.publisher.PublishBookCheckedIn(ctx, req.BookID, req.UserID)

	return nil
}

// record 上报业务指标
func (uc *CheckInUseCase) record(err error, start time.Time) {
	if metrics.LendingDuration == nil {
		return // 未初始化(单元测试)
	}
	metrics.LendingDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.CheckInsTotal.Inc()
		metrics.BooksOnLoan.Inc()
	case errors.Is(err, lending.ErrBookUnavailable):
		metrics.IncCounterVec(metrics.LendingConflictsTotal, map[string]string{"reason": "taken"})
	case errors.Is(err, lending.ErrLoanLimitExceeded):
		metrics.IncCounterVec(metrics.LendingConflictsTotal, map[string]string{"reason": "limit"})
	}
}
