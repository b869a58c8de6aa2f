package lending

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/lending"
	"github.com/xiebiao/library/internal/domain/user"
)

func newCheckOutFixture() (*CheckInUseCase, *CheckOutUseCase, *fakeBookRepo, *fakeLendingRepo, *recordingPublisher) {
	userRepo := &fakeUserRepo{users: map[uint]*user.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com"},
		2: {ID: 2, Username: "bob", Email: "bob@example.com"},
	}}
	bookRepo := &fakeBookRepo{books: map[uint]*book.Book{
		10: {ID: 10, Title: "百年孤独", Available: true},
	}}
	lendingRepo := newFakeLendingRepo()
	publisher := &recordingPublisher{}

	checkIn := NewCheckInUseCase(userRepo, bookRepo, lendingRepo, fakeTransactor{}, publisher)
	checkOut := NewCheckOutUseCase(bookRepo, lendingRepo, fakeTransactor{}, publisher)
	return checkIn, checkOut, bookRepo, lendingRepo, publisher
}

// TestCheckOut 测试还书
func TestCheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("正常还书", func(t *testing.T) {
		checkIn, checkOut, bookRepo, lendingRepo, publisher := newCheckOutFixture()

		require.NoError(t, checkIn.Execute(ctx, CheckInRequest{BookID: 10, UserID: 1}))
		require.NoError(t, checkOut.Execute(ctx, CheckOutRequest{BookID: 10, UserID: 1}))

		// 图书回到在馆状态
		b := bookRepo.books[10]
		assert.True(t, b.Available)
		assert.Empty(t, b.Holder)

		// 在借记录删除,历史借阅集合保留
		assert.NotContains(t, lendingRepo.loans, loanKey{1, 10})
		assert.True(t, lendingRepo.everBorrowed[loanKey{1, 10}], "历史借阅集合不随还书清除")

		assert.Equal(t, []uint{10}, publisher.checkedOut)
	})

	t.Run("未借阅该图书", func(t *testing.T) {
		_, checkOut, bookRepo, _, publisher := newCheckOutFixture()

		err := checkOut.Execute(ctx, CheckOutRequest{BookID: 10, UserID: 1})
		assert.ErrorIs(t, err, lending.ErrLoanNotFound)

		// 图书状态不变,不发事件
		assert.True(t, bookRepo.books[10].Available)
		assert.Empty(t, publisher.checkedOut)
	})

	t.Run("还别人借的书", func(t *testing.T) {
		checkIn, checkOut, bookRepo, _, _ := newCheckOutFixture()

		// alice借的书,bob来还
		require.NoError(t, checkIn.Execute(ctx, CheckInRequest{BookID: 10, UserID: 1}))

		err := checkOut.Execute(ctx, CheckOutRequest{BookID: 10, UserID: 2})
		assert.ErrorIs(t, err, lending.ErrLoanNotFound)

		// 书仍然在alice手里
		assert.Equal(t, "alice", bookRepo.books[10].Holder)
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, checkOut, _, _, _ := newCheckOutFixture()

		err := checkOut.Execute(ctx, CheckOutRequest{BookID: 9999, UserID: 1})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("重复还书", func(t *testing.T) {
		checkIn, checkOut, _, _, _ := newCheckOutFixture()

		require.NoError(t, checkIn.Execute(ctx, CheckInRequest{BookID: 10, UserID: 1}))
		require.NoError(t, checkOut.Execute(ctx, CheckOutRequest{BookID: 10, UserID: 1}))

		// 第二次还同一本
		err := checkOut.Execute(ctx, CheckOutRequest{BookID: 10, UserID: 1})
		assert.ErrorIs(t, err, lending.ErrLoanNotFound)
	})
}

// TestMyBooks 测试我的在借书单
func TestMyBooks(t *testing.T) {
	ctx := context.Background()

	checkIn, _, bookRepo, lendingRepo, _ := newCheckOutFixture()
	bookRepo.books[11] = &book.Book{ID: 11, Title: "围城", Author: "钱锺书", Available: true}

	myBooks := NewMyBooksUseCase(bookRepo, lendingRepo)

	t.Run("空书单", func(t *testing.T) {
		views, err := myBooks.Execute(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("在借图书列表", func(t *testing.T) {
		require.NoError(t, checkIn.Execute(ctx, CheckInRequest{BookID: 10, UserID: 1}))
		require.NoError(t, checkIn.Execute(ctx, CheckInRequest{BookID: 11, UserID: 1}))

		views, err := myBooks.Execute(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, views, 2)

		// 只包含自己的书
		views, err = myBooks.Execute(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
