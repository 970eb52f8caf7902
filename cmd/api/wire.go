//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/bookinfo"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/openlibrary"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
)

// infrastructureSet 基础设施层：日志、数据库、外部查询客户端
var infrastructureSet = wire.NewSet(
	provideLogger,
	database.NewDB,
	provideLookupClient,
	wire.Bind(new(bookinfo.Provider), new(*openlibrary.Client)),
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	database.NewBookRepository,
)

// domainSet 领域层
var domainSet = wire.NewSet(
	book.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewLookupISBNUseCase,
)

// interfaceSet 接口层：处理器和路由
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	router.New,
)

// InitializeApp 组装HTTP服务
// 依赖链：*gin.Engine ← BookHandler ← UseCase ← book.Service ← Repository ← *gorm.DB ← Config
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		newApp,
	)
	return nil, nil, nil
}

// InitializeLookup 只组装ISBN查询用例，不连接数据库
func InitializeLookup(cfg *config.Config) (*appbook.LookupISBNUseCase, func(), error) {
	wire.Build(
		provideLogger,
		provideLookupClient,
		wire.Bind(new(bookinfo.Provider), new(*openlibrary.Client)),
		appbook.NewLookupISBNUseCase,
	)
	return nil, nil, nil
}
