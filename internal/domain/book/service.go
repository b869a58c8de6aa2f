package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 管理类操作接收显式的isAdmin授权决策,由上层(认证中间件)解析
//    身份后传入,领域层不接触HTTP请求对象
// 3. 删除图书涉及跨聚合的级联清理,由lending协调服务负责,不在此接口
type Service interface {
	// CreateBook 新增馆藏图书
	// 业务规则:
	// - 仅管理员可执行
	// - 书名、封面、作者、类别、出版日期必填,简介可选
	CreateBook(ctx context.Context, isAdmin bool, title, coverURL, author, genre, publicationDate, bio string) (*Book, error)

	// UpdateBook 更新图书信息(部分更新,空字段保留原值)
	// 业务规则:仅管理员可执行
	UpdateBook(ctx context.Context, isAdmin bool, id uint, title, coverURL, author, genre, publicationDate, bio string) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// ListBooks 查询全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// SearchByTitle 书名子串搜索
	// 零命中返回ErrNoSearchHits而非空列表
	SearchByTitle(ctx context.Context, fragment string) ([]*Book, error)

	// Trending 热门榜单(按历史借阅次数取前5)
	Trending(ctx context.Context) ([]*TrendingEntry, error)
}

// TrendingLimit 热门榜单条数
const TrendingLimit = 5

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 新增馆藏图书
func (s *service) CreateBook(ctx context.Context, isAdmin bool, title, coverURL, author, genre, publicationDate, bio string) (*Book, error) {
	// 1. 授权检查:决策由调用方传入
	if !isAdmin {
		return nil, ErrNotAdmin
	}

	// 2. 必填字段校验(bio可选)
	if title == "" || coverURL == "" || author == "" || genre == "" || publicationDate == "" {
		return nil, ErrMissingFields
	}

	// 3. 创建图书实体并持久化
	b := NewBook(title, coverURL, author, genre, publicationDate, bio)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, isAdmin bool, id uint, title, coverURL, author, genre, publicationDate, bio string) (*Book, error) {
	// 1. 授权检查
	if !isAdmin {
		return nil, ErrNotAdmin
	}

	// 2. 查询图书(不存在返回ErrBookNotFound)
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 部分更新,空字段保留原值
	b.UpdateInfo(title, coverURL, author, genre, publicationDate, bio)

	// 4. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

// SearchByTitle 书名子串搜索
func (s *service) SearchByTitle(ctx context.Context, fragment string) ([]*Book, error) {
	books, err := s.repo.SearchByTitle(ctx, fragment)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoSearchHits
	}
	return books, nil
}

// Trending 热门榜单
func (s *service) Trending(ctx context.Context) ([]*TrendingEntry, error) {
	return s.repo.Trending(ctx, TrendingLimit)
}
