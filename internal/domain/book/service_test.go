package book

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository 内存仓储(单元测试用)
type fakeRepository struct {
	books  map[uint]*Book
	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{books: make(map[uint]*Book), nextID: 1}
}

func (r *fakeRepository) Create(ctx context.Context, b *Book) error {
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeRepository) FindByID(ctx context.Context, id uint) (*Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepository) FindAll(ctx context.Context) ([]*Book, error) {
	out := make([]*Book, 0, len(r.books))
	for _, b := range r.books {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepository) SearchByTitle(ctx context.Context, fragment string) ([]*Book, error) {
	var out []*Book
	for _, b := range r.books {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(fragment)) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepository) Update(ctx context.Context, b *Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return ErrBookNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeRepository) Acquire(ctx context.Context, id uint, holder string) (bool, error) {
	b, ok := r.books[id]
	if !ok || !b.Available {
		return false, nil
	}
	b.Available = false
	b.Holder = holder
	return true, nil
}

func (r *fakeRepository) Release(ctx context.Context, id uint) error {
	b, ok := r.books[id]
	if !ok {
		return ErrBookNotFound
	}
	b.Available = true
	b.Holder = ""
	return nil
}

func (r *fakeRepository) AppendReader(ctx context.Context, bookID, userID uint) error {
	return nil
}

func (r *fakeRepository) Trending(ctx context.Context, limit int) ([]*TrendingEntry, error) {
	return nil, nil
}

// TestCreateBook 测试新增图书
func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("管理员正常新增", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		b, err := svc.CreateBook(ctx, true,
			"百年孤独", "https://example.com/cover.jpg", "马尔克斯", "小说", "1967-05-30", "代表作")
		require.NoError(t, err)

		assert.NotZero(t, b.ID, "新书应该分配ID")
		assert.True(t, b.Available, "新书应该在馆")
		assert.Empty(t, b.Holder, "新书不应该有借阅人")
	})

	t.Run("非管理员被拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.CreateBook(ctx, false,
			"百年孤独", "https://example.com/cover.jpg", "马尔克斯", "小说", "1967-05-30", "")
		assert.ErrorIs(t, err, ErrNotAdmin)
	})

	t.Run("必填字段缺失", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		// 书名为空
		_, err := svc.CreateBook(ctx, true,
			"", "https://example.com/cover.jpg", "马尔克斯", "小说", "1967-05-30", "")
		assert.ErrorIs(t, err, ErrMissingFields)

		// 作者为空
		_, err = svc.CreateBook(ctx, true,
			"百年孤独", "https://example.com/cover.jpg", "", "小说", "1967-05-30", "")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("简介可选", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		b, err := svc.CreateBook(ctx, true,
			"百年孤独", "https://example.com/cover.jpg", "马尔克斯", "小说", "1967-05-30", "")
		require.NoError(t, err)
		assert.Empty(t, b.Bio)
	})
}

// TestUpdateBook 测试更新图书
func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *Book) {
		svc := NewService(newFakeRepository())
		b, err := svc.CreateBook(ctx, true,
			"旧书名", "https://example.com/old.jpg", "旧作者", "旧类别", "2000-01-01", "旧简介")
		require.NoError(t, err)
		return svc, b
	}

	t.Run("全量更新", func(t *testing.T) {
		svc, b := setup(t)

		updated, err := svc.UpdateBook(ctx, true, b.ID,
			"新书名", "https://example.com/new.jpg", "新作者", "新类别", "2024-01-01", "新简介")
		require.NoError(t, err)

		assert.Equal(t, "新书名", updated.Title)
		assert.Equal(t, "新作者", updated.Author)
	})

	t.Run("空字段保留原值", func(t *testing.T) {
		svc, b := setup(t)

		// 只改作者,其他字段传空
		updated, err := svc.UpdateBook(ctx, true, b.ID, "", "", "新作者", "", "", "")
		require.NoError(t, err)

		assert.Equal(t, "旧书名", updated.Title, "空书名应该保留原值")
		assert.Equal(t, "新作者", updated.Author)
		assert.Equal(t, "旧简介", updated.Bio)
	})

	t.Run("非管理员被拒绝", func(t *testing.T) {
		svc, b := setup(t)

		_, err := svc.UpdateBook(ctx, false, b.ID, "新书名", "", "", "", "", "")
		assert.ErrorIs(t, err, ErrNotAdmin)
	})

	t.Run("图书不存在", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.UpdateBook(ctx, true, 9999, "新书名", "", "", "", "", "")
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

// TestGetBookByID 测试查询单本图书
func TestGetBookByID(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository())

	b, err := svc.CreateBook(ctx, true,
		"百年孤独", "https://example.com/cover.jpg", "马尔克斯", "小说", "1967-05-30", "")
	require.NoError(t, err)

	t.Run("存在", func(t *testing.T) {
		got, err := svc.GetBookByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "百年孤独", got.Title)
	})

	t.Run("不存在返回ErrBookNotFound", func(t *testing.T) {
		_, err := svc.GetBookByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

// TestSearchByTitle 测试书名搜索
func TestSearchByTitle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository())

	titles := []string{"Go语言实战", "Go并发编程", "百年孤独"}
	for _, title := range titles {
		_, err := svc.CreateBook(ctx, true,
			title, "https://example.com/cover.jpg", "作者", "类别", "2020-01-01", "")
		require.NoError(t, err)
	}

	t.Run("子串命中", func(t *testing.T) {
		books, err := svc.SearchByTitle(ctx, "Go")
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("零命中返回ErrNoSearchHits", func(t *testing.T) {
		// 没有匹配时返回错误而不是空列表
		_, err := svc.SearchByTitle(ctx, "不存在的书名")
		assert.ErrorIs(t, err, ErrNoSearchHits)
	})
}

// TestUpdateInfo 测试实体的部分更新语义
func TestUpdateInfo(t *testing.T) {
	b := NewBook("书名", "https://example.com/cover.jpg", "作者", "类别", "2020-01-01", "简介")

	b.UpdateInfo("", "", "", "", "", "")

	assert.Equal(t, "书名", b.Title, "全空更新应该什么都不改")
	assert.Equal(t, "简介", b.Bio)
}

// TestIsHeldBy 测试借阅人判断
func TestIsHeldBy(t *testing.T) {
	b := NewBook("书名", "https://example.com/cover.jpg", "作者", "类别", "2020-01-01", "")

	assert.False(t, b.IsHeldBy("alice"), "在馆图书没有借阅人")

	b.Available = false
	b.Holder = "alice"
	assert.True(t, b.IsHeldBy("alice"))
	assert.False(t, b.IsHeldBy("bob"))
}
