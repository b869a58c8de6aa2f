package lending

import (
	"context"
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/lending"
	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 内存版仓储与协作对象(单元测试用)
// 事务语义简化为直接执行:fn返回error时调用方收到同一个error,
// 仓储状态的回滚不模拟,测试用例各自用独立的fixture规避

type fakeUserRepo struct {
	users map[uint]*user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeBookRepo struct {
	books map[uint]*book.Book
	// 每本书的借阅历史(book_readers),允许重复
	readers map[uint][]uint
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindAll(ctx context.Context) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookRepo) SearchByTitle(ctx context.Context, fragment string) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range r.books {
		if strings.Contains(b.Title, fragment) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	delete(r.readers, id)
	return nil
}

// Acquire 条件更新语义:仅available=true时翻转成功
func (r *fakeBookRepo) Acquire(ctx context.Context, id uint, holder string) (bool, error) {
	b, ok := r.books[id]
	if !ok || !b.Available {
		return false, nil
	}
	b.Available = false
	b.Holder = holder
	return true, nil
}

func (r *fakeBookRepo) Release(ctx context.Context, id uint) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Available = true
	b.Holder = ""
	return nil
}

func (r *fakeBookRepo) AppendReader(ctx context.Context, bookID, userID uint) error {
	if r.readers == nil {
		r.readers = make(map[uint][]uint)
	}
	r.readers[bookID] = append(r.readers[bookID], userID)
	return nil
}

func (r *fakeBookRepo) Trending(ctx context.Context, limit int) ([]*book.TrendingEntry, error) {
	return nil, nil
}

type loanKey struct {
	userID uint
	bookID uint
}

type fakeLendingRepo struct {
	loans map[loanKey]*lending.Loan
	// user_books历史借阅集合
	everBorrowed map[loanKey]bool
}

func newFakeLendingRepo() *fakeLendingRepo {
	return &fakeLendingRepo{
		loans:        make(map[loanKey]*lending.Loan),
		everBorrowed: make(map[loanKey]bool),
	}
}

func (r *fakeLendingRepo) CreateLoan(ctx context.Context, loan *lending.Loan) error {
	key := loanKey{loan.UserID, loan.BookID}
	if _, ok := r.loans[key]; ok {
		return lending.ErrBookUnavailable
	}
	r.loans[key] = loan
	return nil
}

func (r *fakeLendingRepo) DeleteLoan(ctx context.Context, userID, bookID uint) (int64, error) {
	key := loanKey{userID, bookID}
	if _, ok := r.loans[key]; !ok {
		return 0, nil
	}
	delete(r.loans, key)
	return 1, nil
}

func (r *fakeLendingRepo) CountLoans(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for key := range r.loans {
		if key.userID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLendingRepo) FindLoansByUser(ctx context.Context, userID uint) ([]*lending.Loan, error) {
	var out []*lending.Loan
	for key, loan := range r.loans {
		if key.userID == userID {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (r *fakeLendingRepo) RecordEverBorrowed(ctx context.Context, userID, bookID uint) error {
	r.everBorrowed[loanKey{userID, bookID}] = true
	return nil
}

func (r *fakeLendingRepo) PurgeBook(ctx context.Context, bookID uint) error {
	for key := range r.loans {
		if key.bookID == bookID {
			delete(r.loans, key)
		}
	}
	for key := range r.everBorrowed {
		if key.bookID == bookID {
			delete(r.everBorrowed, key)
		}
	}
	return nil
}

// fakeTransactor 直通事务:fn直接执行,不做回滚
type fakeTransactor struct{}

func (fakeTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingPublisher 记录收到的事件
type recordingPublisher struct {
	checkedIn  []uint
	checkedOut []uint
	deleted    []uint
}

func (p *recordingPublisher) PublishBookCheckedIn(ctx context.Context, bookID, userID uint) {
	p.checkedIn = append(p.checkedIn, bookID)
}

func (p *recordingPublisher) PublishBookCheckedOut(ctx context.Context, bookID, userID uint) {
	p.checkedOut = append(p.checkedOut, bookID)
}

func (p *recordingPublisher) PublishBookDeleted(ctx context.Context, bookID uint) {
	p.deleted = append(p.deleted, bookID)
}
