package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 所有方法经getDB取连接,事务内调用时自动走事务连接
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:           b.Title,
		CoverURL:        b.CoverURL,
		Author:          b.Author,
		Genre:           b.Genre,
		PublicationDate: b.PublicationDate,
		Bio:             b.Bio,
		Available:       b.Available,
		Holder:          b.Holder,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindAll 查询全部图书
func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := getDB(ctx, r.db).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// SearchByTitle 书名子串搜索
// utf8mb4默认CI排序规则,LIKE天然大小写不敏感
func (r *bookRepository) SearchByTitle(ctx context.Context, fragment string) ([]*book.Book, error) {
	var models []BookModel
	pattern := "%" + fragment + "%"
	if err := getDB(ctx, r.db).Where("title LIKE ?", pattern).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "搜索图书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		CoverURL:        b.CoverURL,
		Author:          b.Author,
		Genre:           b.Genre,
		PublicationDate: b.PublicationDate,
		Bio:             b.Bio,
		Available:       b.Available,
		Holder:          b.Holder,
		CreatedAt:       b.CreatedAt,
	}

	// Save更新所有字段
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)
	result := db.Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	// 同步清理借阅历史(book_readers归本聚合管理)
	if err := db.Where("book_id = ?", id).Delete(&BookReaderModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清理借阅历史失败")
	}

	return nil
}

// Acquire 原子借出
// UPDATE books SET available=0, holder=? WHERE id=? AND available=1
// RowsAffected=0表示书已被借走(或不存在,由调用方先行FindByID区分)
func (r *bookRepository) Acquire(ctx context.Context, id uint, holder string) (bool, error) {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND available = ?", id, true).
		Updates(map[string]interface{}{
			"available": false,
			"holder":    holder,
		})

	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "借出图书失败")
	}

	return result.RowsAffected > 0, nil
}

// Release 归还图书
func (r *bookRepository) Release(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"available": true,
			"holder":    "",
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "归还图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// AppendReader 追加借阅历史(允许重复)
func (r *bookRepository) AppendReader(ctx context.Context, bookID, userID uint) error {
	model := &BookReaderModel{
		BookID: bookID,
		UserID: userID,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "记录借阅历史失败")
	}
	return nil
}

// Trending 热门榜单
// LEFT JOIN保证零借阅的书也参与排序(计数为0),
// 并列名次的顺序由存储引擎决定,不保证稳定
func (r *bookRepository) Trending(ctx context.Context, limit int) ([]*book.TrendingEntry, error) {
	var rows []struct {
		Title        string
		CoverURL     string
		ReadersCount int64
	}

	err := getDB(ctx, r.db).Model(&BookModel{}).
		Select("books.title AS title, books.cover_url AS cover_url, COUNT(book_readers.id) AS readers_count").
		Joins("LEFT JOIN book_readers ON book_readers.book_id = books.id").
		Where("books.deleted_at IS NULL").
		Group("books.id").
		Order("readers_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询热门榜单失败")
	}

	entries := make([]*book.TrendingEntry, len(rows))
	for i, row := range rows {
		entries[i] = &book.TrendingEntry{
			Title:        row.Title,
			CoverURL:     row.CoverURL,
			ReadersCount: row.ReadersCount,
		}
	}
	return entries, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		CoverURL:        model.CoverURL,
		Author:          model.Author,
		Genre:           model.Genre,
		PublicationDate: model.PublicationDate,
		Bio:             model.Bio,
		Available:       model.Available,
		Holder:          model.Holder,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
