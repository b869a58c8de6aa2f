package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/lending"
)

// 删除用例只触碰Delete/PurgeBook,其余方法空实现即可

type stubBookRepo struct {
	book.Repository
	existing map[uint]bool
	deleted  []uint
}

func (r *stubBookRepo) Delete(ctx context.Context, id uint) error {
	if !r.existing[id] {
		return book.ErrBookNotFound
	}
	delete(r.existing, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubLendingRepo struct {
	lending.Repository
	purged []uint
}

func (r *stubLendingRepo) PurgeBook(ctx context.Context, bookID uint) error {
	r.purged = append(r.purged, bookID)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	deleted []uint
}

func (p *recordingPublisher) PublishBookCheckedIn(ctx context.Context, bookID, userID uint)  {}
func (p *recordingPublisher) PublishBookCheckedOut(ctx context.Context, bookID, userID uint) {}
func (p *recordingPublisher) PublishBookDeleted(ctx context.Context, bookID uint) {
	p.deleted = append(p.deleted, bookID)
}

// TestDeleteBook 测试删除图书
func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	setup := func() (*DeleteBookUseCase, *stubBookRepo, *stubLendingRepo, *recordingPublisher) {
		bookRepo := &stubBookRepo{existing: map[uint]bool{10: true}}
		lendingRepo := &stubLendingRepo{}
		publisher := &recordingPublisher{}
		uc := NewDeleteBookUseCase(bookRepo, lendingRepo, passthroughTx{}, publisher)
		return uc, bookRepo, lendingRepo, publisher
	}

	t.Run("管理员删除并级联清理", func(t *testing.T) {
		uc, bookRepo, lendingRepo, publisher := setup()

		err := uc.Execute(ctx, DeleteBookRequest{IsAdmin: true, BookID: 10})
		require.NoError(t, err)

		assert.Equal(t, []uint{10}, bookRepo.deleted)
		assert.Equal(t, []uint{10}, lendingRepo.purged, "借阅数据应该级联清理")
		assert.Equal(t, []uint{10}, publisher.deleted, "删除后发布事件")
	})

	t.Run("非管理员被拒绝", func(t *testing.T) {
		uc, bookRepo, lendingRepo, _ := setup()

		err := uc.Execute(ctx, DeleteBookRequest{IsAdmin: false, BookID: 10})
		assert.ErrorIs(t, err, book.ErrNotAdmin)
		assert.Empty(t, bookRepo.deleted)
		assert.Empty(t, lendingRepo.purged)
	})

	t.Run("图书不存在", func(t *testing.T) {
		uc, _, lendingRepo, publisher := setup()

		err := uc.Execute(ctx, DeleteBookRequest{IsAdmin: true, BookID: 9999})
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		// 不存在时不触碰用户数据,不发事件
		assert.Empty(t, lendingRepo.purged)
		assert.Empty(t, publisher.deleted)
	})
}
