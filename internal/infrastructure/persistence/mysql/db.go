package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&BookReaderModel{},
		&LoanModel{},
		&UserBookModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Username  string         `gorm:"uniqueIndex;size:32;not null;comment:用户名（借阅标识，books.holder存它）"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱（登录标识）"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	IsAdmin   bool           `gorm:"default:false;comment:是否管理员"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 单副本馆藏:available/holder成对表达借出状态
// 2. 书名走LIKE搜索,utf8mb4默认CI排序规则保证大小写不敏感
// 3. available加索引,便于统计在借/在馆数量
type BookModel struct {
	ID              uint           `gorm:"primaryKey"`
	Title           string         `gorm:"index;size:200;not null;comment:书名"`
	CoverURL        string         `gorm:"size:500;not null;comment:封面图片URL"`
	Author          string         `gorm:"size:100;not null;comment:作者"`
	Genre           string         `gorm:"size:50;not null;comment:类别"`
	PublicationDate string         `gorm:"size:32;not null;comment:出版日期"`
	Bio             string         `gorm:"type:text;comment:简介"`
	Available       bool           `gorm:"index;default:true;comment:是否在馆"`
	Holder          string         `gorm:"size:32;default:'';comment:当前借阅人用户名"`
	CreatedAt       time.Time      `gorm:"comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BookReaderModel 借阅历史模型（追加表）
// 设计说明:
// 1. 每次成功借出追加一行,重复借阅重复计数（热门榜单按行数统计）
// 2. 没有唯一约束,这是有意的
type BookReaderModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	UserID    uint      `gorm:"index;not null;comment:借阅人用户ID"`
	CreatedAt time.Time `gorm:"comment:借出时间"`
}

// TableName 指定表名
func (BookReaderModel) TableName() string {
	return "book_readers"
}

// LoanModel 在借记录模型
// (user_id, book_id)唯一:一本书同一时刻只在一个人手里,
// 与books.holder互为印证
type LoanModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:借阅人用户ID"`
	BookID      uint      `gorm:"uniqueIndex:idx_user_book;index;not null;comment:图书ID"`
	CheckInDate time.Time `gorm:"not null;comment:借出日期"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}

// UserBookModel 历史借阅集合模型
// 集合语义:(user_id, book_id)唯一,重复借阅不新增行
type UserBookModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_ever_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_user_ever_book;index;not null;comment:图书ID"`
	CreatedAt time.Time `gorm:"comment:首次借阅时间"`
}

// TableName 指定表名
func (UserBookModel) TableName() string {
	return "user_books"
}
