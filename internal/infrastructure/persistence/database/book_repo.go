package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 把数据库错误转换为ErrBookNotFound/ErrPersistence
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return persistenceError("create book", err)
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, persistenceError("find book", err)
	}

	return toBookEntity(&model), nil
}

// List 按ID升序查询全部图书
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, persistenceError("list books", err)
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// Update 整体替换图书的可变字段
// 在事务中先锁定行(SELECT ... FOR UPDATE)确认存在，再更新四个字段。
// 不用RowsAffected判断存在性：MySQL在值未变化时返回0行。
// SQLite方言会忽略行锁子句。
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model BookModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, b.ID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return persistenceError("lock book", err)
		}

		// 用map更新，nil的ISBN也会写成NULL
		err = tx.Model(&model).Updates(map[string]interface{}{
			"title":            b.Title,
			"author":           b.Author,
			"publication_date": book.TruncateDate(b.PublicationDate),
			"isbn":             b.ISBN,
		}).Error
		if err != nil {
			return persistenceError("update book", err)
		}

		b.CreatedAt = model.CreatedAt
		b.UpdatedAt = model.UpdatedAt
		return nil
	})
}

// Delete 物理删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)
	if result.Error != nil {
		return persistenceError("delete book", result.Error)
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationDate: book.TruncateDate(b.PublicationDate),
		ISBN:            b.ISBN,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		Author:          model.Author,
		PublicationDate: book.TruncateDate(model.PublicationDate),
		ISBN:            model.ISBN,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
