package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrNoSearchHits 搜索无结果
	// 零命中按资源不存在处理,不返回空数组(既定接口行为)
	ErrNoSearchHits = apperrors.New(apperrors.ErrCodeNoSearchHits, "没有找到匹配的图书")

	// ErrMissingFields 必填字段缺失
	ErrMissingFields = apperrors.New(apperrors.ErrCodeInvalidParams, "请填写完整的图书信息")

	// ErrNotAdmin 非管理员无权执行图书管理操作
	ErrNotAdmin = apperrors.New(apperrors.ErrCodeForbidden, "只有管理员可以管理图书")
)
