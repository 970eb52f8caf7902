package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase *appbook.CreateBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
	lookupISBNUseCase *appbook.LookupISBNUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	lookupISBNUseCase *appbook.LookupISBNUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase: createBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
		lookupISBNUseCase: lookupISBNUseCase,
	}
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  校验请求体后保存图书，返回分配的ID
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "请求体或字段错误"
// @Failure      500 {object} response.ErrorBody "存储失败"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 校验请求体(先于任何存储访问)
	in, ok := parseBody(c)
	if !ok {
		return
	}

	// 2. 调用应用层用例
	result, err := h.createBookUseCase.Execute(c.Request.Context(), *in)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result.ID, "Book added successfully")
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按ID升序返回全部图书，不分页
// @Tags         图书
// @Produce      json
// @Success      200 {array}  dto.BookResponse
// @Failure      500 {object} response.ErrorBody
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	list, err := h.listBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookListResponse(list))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookResponse(result))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  整体替换title、author、publication_date、isbn，未提供isbn时清空
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "请求体或字段错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	in, ok := parseBody(c)
	if !ok {
		return
	}

	if _, err := h.updateBookUseCase.Execute(c.Request.Context(), id, *in); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Book updated successfully")
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.MessageBody
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Book deleted successfully")
}

// LookupISBN 按ISBN查询外部书目信息
// @Summary      ISBN查询
// @Description  转发到Open Library，不写入本地存储。外部服务的非200状态码原样返回
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} dto.LookupResponse
// @Failure      404 {object} response.ErrorBody "外部服务中没有该ISBN"
// @Failure      500 {object} response.ErrorBody "外部服务不可达"
// @Router       /api/books/isbn/{isbn} [get]
func (h *BookHandler) LookupISBN(c *gin.Context) {
	result, err := h.lookupISBNUseCase.Execute(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewLookupResponse(result))
}

// parseID 解析路径中的图书ID
// 非数字、0或超出范围的ID都按图书不存在处理
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil || id == 0 {
		response.Error(c, book.ErrBookNotFound)
		return 0, false
	}
	return uint(id), true
}

// parseBody 读取并校验请求体，失败时已写出错误响应
func parseBody(c *gin.Context) (*appbook.BookInput, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperrors.ErrMalformedRequest.WithStatus(http.StatusRequestEntityTooLarge))
		} else {
			response.Error(c, apperrors.ErrMalformedRequest.WithCause(err))
		}
		return nil, false
	}

	in, appErr := appbook.ParsePayload(body)
	if appErr != nil {
		response.Error(c, appErr)
		return nil, false
	}
	return in, true
}
