package lending

import (
	"time"
)

// MaxCurrentBooks 每个用户同时在借图书的上限
const MaxCurrentBooks = 5

// Loan 在借记录
// 设计说明:
// 1. 一行对应"某用户当前借着某本书",还书即删行,不保留历史
//    (历史借阅集合由user_books表维护,见Repository.RecordEverBorrowed)
// 2. (UserID, BookID)唯一:同一本书同一时间只会被借出一次,
//    数据库唯一索引兜底
// 3. CheckInDate允许调用方指定(补录线下借阅),缺省为当前时间
type Loan struct {
	ID          uint
	UserID      uint
	BookID      uint
	CheckInDate time.Time
	CreatedAt   time.Time
}

// NewLoan 创建在借记录
// checkInDate为零值时取当前时间
func NewLoan(userID, bookID uint, checkInDate time.Time) *Loan {
	if checkInDate.IsZero() {
		checkInDate = time.Now()
	}
	return &Loan{
		UserID:      userID,
		BookID:      bookID,
		CheckInDate: checkInDate,
		CreatedAt:   time.Now(),
	}
}
