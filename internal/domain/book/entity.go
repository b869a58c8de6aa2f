package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是馆藏图书聚合的根实体,每条记录对应一本实体书(单副本)
// 2. Available/Holder成对变化:Available=false当且仅当Holder非空
// 3. 借出状态的变更只能走Repository的条件更新(Acquire/Release),
//    实体上不提供直接翻转Available的方法,避免绕过并发控制
// 4. 领域实体不依赖GORM tag(infrastructure层的Repository实现时会处理映射)
type Book struct {
	ID              uint
	Title           string // 书名
	CoverURL        string // 封面图片URL
	Author          string // 作者
	Genre           string // 类别
	PublicationDate string // 出版日期(保留原始字符串,不做日期解析)
	Bio             string // 简介(可选)
	Available       bool   // 是否在馆
	Holder          string // 当前借阅人用户名(在馆时为空)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 新书总是在馆状态:Available=true,Holder为空,无借阅历史
func NewBook(title, coverURL, author, genre, publicationDate, bio string) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		CoverURL:        coverURL,
		Author:          author,
		Genre:           genre,
		PublicationDate: publicationDate,
		Bio:             bio,
		Available:       true,
		Holder:          "",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateInfo 更新图书基本信息(领域行为)
// 部分更新语义:空字符串表示"不修改该字段",保留原值
// 注意:这意味着无法通过本方法把Bio清空,属既定行为
func (b *Book) UpdateInfo(title, coverURL, author, genre, publicationDate, bio string) {
	if title != "" {
		b.Title = title
	}
	if coverURL != "" {
		b.CoverURL = coverURL
	}
	if author != "" {
		b.Author = author
	}
	if genre != "" {
		b.Genre = genre
	}
	if publicationDate != "" {
		b.PublicationDate = publicationDate
	}
	if bio != "" {
		b.Bio = bio
	}
	b.UpdatedAt = time.Now()
}

// IsHeldBy 检查图书是否正被指定用户借阅
func (b *Book) IsHeldBy(username string) bool {
	return !b.Available && b.Holder == username
}

// TrendingEntry 热门榜单条目(只读投影)
// ReadersCount统计book_readers表的行数,重复借阅会重复计数
type TrendingEntry struct {
	Title        string
	CoverURL     string
	ReadersCount int64
}
