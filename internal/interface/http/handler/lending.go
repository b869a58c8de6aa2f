package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	applending "github.com/xiebiao/library/internal/application/lending"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// LendingHandler 借还HTTP处理器
// 借阅人永远是当前登录用户,不接受请求体指定其他用户
type LendingHandler struct {
	checkInUseCase  *applending.CheckInUseCase
	checkOutUseCase *applending.CheckOutUseCase
	myBooksUseCase  *applending.MyBooksUseCase
}

// NewLendingHandler 创建借还处理器
func NewLendingHandler(
	checkInUseCase *applending.CheckInUseCase,
	checkOutUseCase *applending.CheckOutUseCase,
	myBooksUseCase *applending.MyBooksUseCase,
) *LendingHandler {
	return &LendingHandler{
		checkInUseCase:  checkInUseCase,
		checkOutUseCase: checkOutUseCase,
		myBooksUseCase:  myBooksUseCase,
	}
}

// CheckIn 借书
// @Summary      借书
// @Description  当前用户借入一本书;同一时刻一本书只能在一个人手里
// @Tags         借还
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.CheckInRequest false "可选的借出日期"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "图书已被借走或超出借阅上限"
// @Router       /api/v1/books/checkin/{id} [post]
func (h *LendingHandler) CheckIn(c *gin.Context) {
	bookID, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 请求体可以为空(直接借,日期取当前时间)
	var req dto.CheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
			return
		}
	}

	var checkInDate time.Time
	if req.CheckInDate != "" {
		// binding已校验过格式,这里不会失败
		checkInDate, _ = time.Parse("2006-01-02", req.CheckInDate)
	}

	err = h.checkInUseCase.Execute(c.Request.Context(), applending.CheckInRequest{
		BookID:      bookID,
		UserID:      middleware.MustGetUserID(c),
		CheckInDate: checkInDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "借阅成功"})
}

// CheckOut 还书
// @Summary      还书
// @Description  当前用户归还一本在借图书
// @Tags         借还
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在或未借阅该图书"
// @Router       /api/v1/books/checkout/{id} [post]
func (h *LendingHandler) CheckOut(c *gin.Context) {
	bookID, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	err = h.checkOutUseCase.Execute(c.Request.Context(), applending.CheckOutRequest{
		BookID: bookID,
		UserID: middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "归还成功"})
}

// MyBooks 我的在借图书
// @Summary      我的书单
// @Description  当前用户的全部在借图书
// @Tags         借还
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.LoanResponse}
// @Router       /api/v1/users/me/books [get]
func (h *LendingHandler) MyBooks(c *gin.Context) {
	views, err := h.myBooksUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]*dto.LoanResponse, len(views))
	for i, v := range views {
		resp[i] = &dto.LoanResponse{
			BookID:      v.BookID,
			Title:       v.Title,
			CoverPage:   v.CoverPage,
			Author:      v.Author,
			CheckInDate: v.CheckInDate,
		}
	}
	response.Success(c, resp)
}
