package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
// 查询接口对所有登录用户开放,管理接口要求管理员
// (授权决策由中间件解析后经用例显式下传,Handler不做权限判断)
type BookHandler struct {
	createBookUseCase  *appbook.CreateBookUseCase
	updateBookUseCase  *appbook.UpdateBookUseCase
	deleteBookUseCase  *appbook.DeleteBookUseCase
	getBookUseCase     *appbook.GetBookUseCase
	listBooksUseCase   *appbook.ListBooksUseCase
	searchBooksUseCase *appbook.SearchBooksUseCase
	trendingUseCase    *appbook.TrendingUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	searchBooksUseCase *appbook.SearchBooksUseCase,
	trendingUseCase *appbook.TrendingUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase:  createBookUseCase,
		updateBookUseCase:  updateBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
		getBookUseCase:     getBookUseCase,
		listBooksUseCase:   listBooksUseCase,
		searchBooksUseCase: searchBooksUseCase,
		trendingUseCase:    trendingUseCase,
	}
}

// parseBookID 解析路径中的图书ID
// 格式非法返回ErrInvalidID(400),与"图书不存在"(404)是两类错误
func parseBookID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

// GetBook 查询单本图书
// @Summary      图书详情
// @Description  根据ID查询图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "ID格式非法"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/getbook/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  查询全部馆藏图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books/getbooks [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	results, err := h.listBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponses(results))
}

// SearchBooks 书名搜索
// @Summary      搜索图书
// @Description  书名子串搜索(不区分大小写);零命中返回404
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        title path string true "书名片段"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      404 {object} response.Response "没有找到匹配的图书"
// @Router       /api/v1/books/search/{title} [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	results, err := h.searchBooksUseCase.Execute(c.Request.Context(), c.Param("title"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponses(results))
}

// Trending 热门榜单
// @Summary      热门图书
// @Description  按历史借阅次数降序取前5
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.TrendingItemResponse}
// @Router       /api/v1/books/trending [get]
func (h *BookHandler) Trending(c *gin.Context) {
	items, err := h.trendingUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]*dto.TrendingItemResponse, len(items))
	for i, item := range items {
		resp[i] = &dto.TrendingItemResponse{
			Title:        item.Title,
			CoverPage:    item.CoverPage,
			ReadersCount: item.ReadersCount,
		}
	}
	response.Success(c, resp)
}

// CreateBook 新增图书(管理员)
// @Summary      新增图书
// @Description  管理员新增馆藏图书
// @Tags         图书管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "必填字段缺失"
// @Failure      403 {object} response.Response "非管理员"
// @Router       /api/v1/books/create [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		IsAdmin:         middleware.IsAdmin(c),
		Title:           req.Title,
		CoverPage:       req.CoverPage,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationDate: req.PublicationDate,
		Bio:             req.Bio,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// UpdateBook 更新图书(管理员)
// @Summary      更新图书
// @Description  管理员更新图书信息;省略的字段保留原值
// @Tags         图书管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      403 {object} response.Response "非管理员"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/update/{id} [post]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		IsAdmin:         middleware.IsAdmin(c),
		BookID:          id,
		Title:           req.Title,
		CoverPage:       req.CoverPage,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationDate: req.PublicationDate,
		Bio:             req.Bio,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// DeleteBook 删除图书(管理员)
// @Summary      删除图书
// @Description  管理员删除图书,级联清理所有用户的在借记录和借阅历史
// @Tags         图书管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "ID格式非法"
// @Failure      403 {object} response.Response "非管理员"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/delete/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	err = h.deleteBookUseCase.Execute(c.Request.Context(), appbook.DeleteBookRequest{
		IsAdmin: middleware.IsAdmin(c),
		BookID:  id,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "图书已删除"})
}

// =========================================
// 辅助函数:应用层DTO → HTTP DTO
// =========================================

func toBookResponse(v *appbook.BookView) *dto.BookResponse {
	return &dto.BookResponse{
		ID:              v.ID,
		Title:           v.Title,
		CoverPage:       v.CoverPage,
		Author:          v.Author,
		Genre:           v.Genre,
		PublicationDate: v.PublicationDate,
		Bio:             v.Bio,
		Available:       v.Available,
		Holder:          v.Holder,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func toBookResponses(views []*appbook.BookView) []*dto.BookResponse {
	resp := make([]*dto.BookResponse, len(views))
	for i, v := range views {
		resp[i] = toBookResponse(v)
	}
	return resp
}
