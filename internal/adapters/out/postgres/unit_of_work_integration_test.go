package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "handoff/internal/adapters/out/postgres"
	"handoff/internal/adapters/out/postgres/orderrepo"
	"handoff/internal/core/domain/model/kernel"
	"handoff/internal/core/domain/model/order"
	"handoff/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that the GORM-based Unit of Work
// gives the handoff protocol its atomic commit point: the order row and its
// leg rows become visible together or not at all.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LegDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE legs, orders").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreate_ReturnsIndependentInstances() {
	first := suite.factory.Create()
	second := suite.factory.Create()

	suite.NotNil(first)
	suite.NotNil(second)
	suite.NotSame(first, second)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrder() {
	ctx := context.Background()
	uow := suite.factory.Create()
	aggregate := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertOrderCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	aggregate := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertOrderCount(0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()

	err := uow.Commit(context.Background())

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_Fails() {
	uow := suite.factory.Create()

	err := uow.Rollback(context.Background())

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommit_IsSafeToDefer() {
	ctx := context.Background()
	uow := suite.factory.Create()
	aggregate := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	err := uow.Rollback(ctx)

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
	suite.assertOrderCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_IsNoOp() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

// The leg row and the order's status change must never be observable
// separately: a reader sees the pre-mutation state until commit, then both
// changes at once.
func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_LegAndStatusAreAtomic() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(setup.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	repo := uow.OrderRepository()

	loaded, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	_, err = loaded.StartLeg(kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Update(ctx, loaded))

	// Outside the transaction nothing has changed yet.
	outside := postgres_adapter.NewGormUnitOfWorkFactory(suite.db).Create()
	observed, err := outside.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Created, observed.Status())
	suite.Empty(observed.Legs())

	suite.Require().NoError(uow.Commit(ctx))

	observed, err = outside.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, observed.Status())
	suite.Len(observed.Legs(), 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	aggregate, err := order.NewOrder(kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
