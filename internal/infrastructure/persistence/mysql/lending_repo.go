package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/lending"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// lendingRepository 借阅仓储实现(MySQL)
// 管理loans(在借)与user_books(历史借阅集合)两张表
type lendingRepository struct {
	db *gorm.DB
}

// NewLendingRepository 创建借阅仓储
func NewLendingRepository(db *gorm.DB) lending.Repository {
	return &lendingRepository{db: db}
}

// CreateLoan 新增在借记录
func (r *lendingRepository) CreateLoan(ctx context.Context, loan *lending.Loan) error {
	model := &LoanModel{
		UserID:      loan.UserID,
		BookID:      loan.BookID,
		CheckInDate: loan.CheckInDate,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 唯一索引兜底:并发下同一用户重复借同一本书
			return lending.ErrBookUnavailable
		}
		return apperrors.Wrap(err, "创建在借记录失败")
	}

	loan.ID = model.ID
	loan.CreatedAt = model.CreatedAt
	return nil
}

// DeleteLoan 删除在借记录(还书)
// 返回删除行数,0表示该用户并未借阅这本书
func (r *lendingRepository) DeleteLoan(ctx context.Context, userID, bookID uint) (int64, error) {
	result := getDB(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&LoanModel{})

	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除在借记录失败")
	}

	return result.RowsAffected, nil
}

// CountLoans 统计用户当前在借数量
func (r *lendingRepository) CountLoans(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计在借数量失败")
	}
	return count, nil
}

// FindLoansByUser 查询用户当前在借的全部记录
func (r *lendingRepository) FindLoansByUser(ctx context.Context, userID uint) ([]*lending.Loan, error) {
	var models []LoanModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("check_in_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询在借记录失败")
	}

	loans := make([]*lending.Loan, len(models))
	for i, m := range models {
		loans[i] = &lending.Loan{
			ID:          m.ID,
			UserID:      m.UserID,
			BookID:      m.BookID,
			CheckInDate: m.CheckInDate,
			CreatedAt:   m.CreatedAt,
		}
	}
	return loans, nil
}

// RecordEverBorrowed 记录到历史借阅集合
// INSERT IGNORE语义:重复借阅同一本书不新增行,也不报错
func (r *lendingRepository) RecordEverBorrowed(ctx context.Context, userID, bookID uint) error {
	model := &UserBookModel{
		UserID: userID,
		BookID: bookID,
	}

	err := getDB(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "记录历史借阅失败")
	}
	return nil
}

// PurgeBook 图书删除时的级联清理
func (r *lendingRepository) PurgeBook(ctx context.Context, bookID uint) error {
	db := getDB(ctx, r.db)

	if err := db.Where("book_id = ?", bookID).Delete(&LoanModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清理在借记录失败")
	}

	if err := db.Where("book_id = ?", bookID).Delete(&UserBookModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清理历史借阅失败")
	}

	return nil
}
