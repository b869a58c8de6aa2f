package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 借出/归还的状态翻转是条件更新,成功与否由返回值表达,
//    调用方(借阅协调服务)据此区分"已被借走"与正常路径
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindAll 查询全部图书(馆藏规模可控,不分页)
	FindAll(ctx context.Context) ([]*Book, error)

	// SearchByTitle 书名子串搜索(不区分大小写)
	// 零命中返回空切片,由上层决定错误语义
	SearchByTitle(ctx context.Context, fragment string) ([]*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	// 不存在时返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// Acquire 原子借出:UPDATE ... SET available=0, holder=?
	// WHERE id=? AND available=1
	// 返回是否抢到(false表示已被他人借走),是唯一的借出路径
	Acquire(ctx context.Context, id uint, holder string) (bool, error)

	// Release 归还:available=1, holder置空
	Release(ctx context.Context, id uint) error

	// AppendReader 追加借阅历史(book_readers,允许重复)
	AppendReader(ctx context.Context, bookID, userID uint) error

	// Trending 热门榜单:按历史借阅次数降序取前limit本
	// 并列名次的相对顺序不保证稳定
	Trending(ctx context.Context, limit int) ([]*TrendingEntry, error)
}
