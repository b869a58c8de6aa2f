package lending

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrBookUnavailable 图书已被借出(条件更新未命中)
	ErrBookUnavailable = apperrors.New(apperrors.ErrCodeBookUnavailable, "图书已被借出")

	// ErrLoanLimitExceeded 超出同时在借数量上限
	ErrLoanLimitExceeded = apperrors.New(apperrors.ErrCodeLoanLimitExceeded, "同时借阅不能超过5本")

	// ErrLoanNotFound 未借阅该图书(还书时无对应在借记录)
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "您未借阅该图书")
)
