package cmd

import (
	"log/slog"
	"time"

	"handoff/internal/adapters/out/postgres"
	redisadapter "handoff/internal/adapters/out/redis"
	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/application/usecases/queries"
	"handoff/internal/core/ports"
	"handoff/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	locker      ports.Locker
	idempotency ports.IdempotencyStore
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, redisClient *redis.Client) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:      redisadapter.NewLocker(redisClient),
		idempotency: redisadapter.NewIdempotencyStore(redisClient),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateStartLegCommandHandler() commands.StartLegCommandHandler {
	return commands.NewStartLegCommandHandler(c.orderUoWFactory(), c.locker, c.idempotency)
}

func (c *CompositionRoot) CreateFinishLegCommandHandler() commands.FinishLegCommandHandler {
	return commands.NewFinishLegCommandHandler(c.orderUoWFactory(), c.locker, c.idempotency)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStalledOrdersQueryHandler() queries.GetStalledOrdersQueryHandler {
	return queries.NewGetStalledOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(stallThreshold time.Duration, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetStalledOrdersQueryHandler(), stallThreshold, logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
