package book

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/xiebiao/bookshelf/internal/domain/book Repository

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 实现方负责把数据库错误转换为ErrBookNotFound/ErrPersistence
type Repository interface {
	// Create 创建图书,成功后回填ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// List 按ID升序返回全部图书,没有数据时返回空切片
	List(ctx context.Context) ([]*Book, error)

	// Update 整体替换图书的可变字段,不存在时返回ErrBookNotFound
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书,不存在时返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error
}
