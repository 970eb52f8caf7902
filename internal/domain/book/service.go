package book

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const tracerName = "bookshelf/domain/book"

// Service 图书领域服务接口
// 设计说明:
// 1. 对外提供图书存储的完整契约(创建/列表/查询/更新/删除)
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 每个操作记录Span和操作计数
type Service interface {
	// CreateBook 创建图书,返回分配了ID的记录
	CreateBook(ctx context.Context, title, author string, publicationDate time.Time, isbn *string) (*Book, error)

	// ListBooks 返回全部图书(插入顺序)
	ListBooks(ctx context.Context) ([]*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 整体替换图书的四个可变字段
	UpdateBook(ctx context.Context, id uint, title, author string, publicationDate time.Time, isbn *string) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title, author string, publicationDate time.Time, isbn *string) (b *Book, err error) {
	ctx, done := s.observe(ctx, "create")
	defer func() { done(err) }()

	b = NewBook(title, author, publicationDate, isbn)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) (books []*Book, err error) {
	ctx, done := s.observe(ctx, "list")
	defer func() { done(err) }()

	books, err = s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*Book{}
	}
	return books, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (b *Book, err error) {
	ctx, done := s.observe(ctx, "get", attribute.Int64("book.id", int64(id)))
	defer func() { done(err) }()

	if id == 0 {
		return nil, ErrBookNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书
// 存在性检查和更新在仓储的同一个事务内完成
func (s *service) UpdateBook(ctx context.Context, id uint, title, author string, publicationDate time.Time, isbn *string) (b *Book, err error) {
	ctx, done := s.observe(ctx, "update", attribute.Int64("book.id", int64(id)))
	defer func() { done(err) }()

	if id == 0 {
		return nil, ErrBookNotFound
	}

	b = &Book{ID: id}
	b.Replace(title, author, publicationDate, isbn)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) (err error) {
	ctx, done := s.observe(ctx, "delete", attribute.Int64("book.id", int64(id)))
	defer func() { done(err) }()

	if id == 0 {
		return ErrBookNotFound
	}
	return s.repo.Delete(ctx, id)
}

// observe 开启Span，返回的done在操作结束时记录结果
func (s *service) observe(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "book."+operation, attrs...)
	return ctx, func(err error) {
		result := "success"
		switch {
		case errors.Is(err, ErrBookNotFound):
			result = "not_found"
		case err != nil:
			result = "error"
			tracing.RecordError(span, err)
		}
		metrics.ObserveBookOperation(operation, result)
		span.End()
	}
}
