package queries_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"bookdesk/internal/adapters/out/postgres"
	"bookdesk/internal/adapters/out/postgres/pgtest"
	"bookdesk/internal/core/application/usecases/queries"
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/core/domain/model/product"
	"bookdesk/internal/core/domain/model/student"
	"bookdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// prefixResolver signs every key by prefixing it.
type prefixResolver struct{}

func (prefixResolver) Resolve(_ context.Context, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http") {
		return ref
	}
	return "signed:" + ref
}

func (r prefixResolver) ResolveAll(ctx context.Context, refs []string) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = r.Resolve(ctx, ref)
	}
	return out
}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg *pgtest.Database

	operator kernel.UUID
	product  *product.Product
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration suite")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	suite.pg = pgtest.Start(context.Background(), suite.T())
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.pg.Terminate(suite.T())
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.pg.Truncate(suite.T())
	suite.operator = kernel.NewUUID()
	suite.product = suite.pg.SeedProduct(suite.T(), suite.operator, "Arabic Grammar", 4)
}

// put writes an order in the given status through the real unit of work.
func (suite *QueriesIntegrationTestSuite) put(s *student.Student, status order.Status, evidence string) {
	ctx := context.Background()
	uow := postgres.NewGormUnitOfWorkFactory(suite.pg.DB).Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	o, err := order.NewOrder(kernel.NewUUID(), s.ID(), suite.product.ID(), evidence, "", time.Now().UTC())
	suite.Require().NoError(err)
	added, err := uow.OrderRepository().AddIfAbsent(ctx, o)
	suite.Require().NoError(err)
	suite.Require().True(added)

	if status != order.PendingConfirmation {
		candidate, err := order.NewOverride(s.ID(), suite.product.ID(), status, time.Now().UTC())
		suite.Require().NoError(err)
		_, err = uow.OrderRepository().Upsert(ctx, candidate)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *QueriesIntegrationTestSuite) TestGetProductStats() {
	pending := suite.pg.SeedStudent(suite.T(), "Adam", 4)
	paid := suite.pg.SeedStudent(suite.T(), "Basma", 4)
	delivered := suite.pg.SeedStudent(suite.T(), "Carma", 4)
	declined := suite.pg.SeedStudent(suite.T(), "Dina", 4)
	nothing := suite.pg.SeedStudent(suite.T(), "Ezz", 4)
	suite.pg.SeedStudent(suite.T(), "Other Class", 3)

	suite.put(pending, order.PendingConfirmation, "payments/1-a.jpg")
	suite.put(paid, order.Paid, "payments/2-b.jpg")
	suite.put(delivered, order.Delivered, "https://cdn.example/3.jpg")
	suite.put(declined, order.Declined, "payments/4-d.jpg")

	query, err := queries.NewGetProductStatsQuery(suite.operator, suite.product.ID())
	suite.Require().NoError(err)
	stats, err := queries.NewGetProductStatsQueryHandler(suite.pg.DB, prefixResolver{}).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(queries.ProductTotals{
		Sales:               2,
		PendingPickup:       1,
		PendingConfirmation: 1,
		Delivered:           1,
		UnpaidStudents:      2,
	}, stats.Totals)

	suite.Require().Len(stats.PendingConfirmation, 1)
	suite.Equal("signed:payments/1-a.jpg", stats.PendingConfirmation[0].EvidenceURL)
	suite.Require().Len(stats.PendingPickup, 1)
	suite.Equal(paid.ID(), stats.PendingPickup[0].StudentID)
	suite.NotEmpty(stats.PendingPickup[0].RedemptionCode)
	suite.Len(stats.Paid, 2)

	suite.Require().Len(stats.UnpaidStudents, 2)
	suite.Equal("Dina", stats.UnpaidStudents[0].Name)
	suite.Equal("DECLINED", stats.UnpaidStudents[0].Status)
	suite.Equal(nothing.ID(), stats.UnpaidStudents[1].StudentID)
	suite.Equal("UNPAID", stats.UnpaidStudents[1].Status)
}

func (suite *QueriesIntegrationTestSuite) TestGetProductStats_OtherOperatorIsDenied() {
	query, err := queries.NewGetProductStatsQuery(kernel.NewUUID(), suite.product.ID())
	suite.Require().NoError(err)

	_, err = queries.NewGetProductStatsQueryHandler(suite.pg.DB, prefixResolver{}).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *QueriesIntegrationTestSuite) TestGetStudentOrder() {
	s := suite.pg.SeedStudent(suite.T(), "Farah", 4)
	handler := queries.NewGetStudentOrderQueryHandler(suite.pg.DB, prefixResolver{})
	query, err := queries.NewGetStudentOrderQuery(s.ID(), suite.product.ID())
	suite.Require().NoError(err)

	none, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.False(none.Found)
	suite.Equal("UNPAID", none.Status)

	suite.put(s, order.Paid, "payments/9-z.jpg")
	got, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(got.Found)
	suite.Equal("PAID", got.Status)
	suite.Equal("payments/9-z.jpg", got.EvidenceKey)
	suite.Equal("signed:payments/9-z.jpg", got.EvidenceURL)
	suite.NotEmpty(got.RedemptionCode)
}

func (suite *QueriesIntegrationTestSuite) TestGetStudentProducts() {
	s := suite.pg.SeedStudent(suite.T(), "Gamal", 4)
	suite.pg.SeedProduct(suite.T(), suite.operator, "Biology", 4)
	suite.pg.SeedProduct(suite.T(), suite.operator, "Wrong Class", 1)
	suite.put(s, order.Declined, "payments/5-e.jpg")

	query, err := queries.NewGetStudentProductsQuery(s.ID())
	suite.Require().NoError(err)
	items, err := queries.NewGetStudentProductsQueryHandler(suite.pg.DB).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(items, 2)
	suite.Equal("Arabic Grammar", items[0].Product.Name)
	suite.Equal("DECLINED", items[0].OrderStatus)
	suite.Equal("Biology", items[1].Product.Name)
	suite.Equal("UNPAID", items[1].OrderStatus)
	suite.Empty(items[1].RedemptionCode)
}

func (suite *QueriesIntegrationTestSuite) TestGetStudentProducts_UnknownStudent() {
	query, err := queries.NewGetStudentProductsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetStudentProductsQueryHandler(suite.pg.DB).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestSearchStudents() {
	for _, name := range []string{"Hana Ali", "Hany Adel", "Hazem Samir"} {
		suite.pg.SeedStudent(suite.T(), name, 2)
	}
	suite.pg.SeedStudent(suite.T(), "Hana Other", 5)
	handler := queries.NewSearchStudentsQueryHandler(suite.pg.DB)

	short, err := queries.NewSearchStudentsQuery("ha", nil)
	suite.Require().NoError(err)
	got, err := handler.Handle(context.Background(), short)
	suite.Require().NoError(err)
	suite.Empty(got)

	classID := 2
	query, err := queries.NewSearchStudentsQuery("han", &classID)
	suite.Require().NoError(err)
	got, err = handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("Hana Ali", got[0].Name)
	suite.Equal("Hany Adel", got[1].Name)

	wildcard, err := queries.NewSearchStudentsQuery("%%%", nil)
	suite.Require().NoError(err)
	got, err = handler.Handle(context.Background(), wildcard)
	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *QueriesIntegrationTestSuite) TestSearchStudents_CapsResults() {
	for i := range 12 {
		suite.pg.SeedStudent(suite.T(), "Student "+string(rune('A'+i)), 1)
	}
	query, err := queries.NewSearchStudentsQuery("student", nil)
	suite.Require().NoError(err)

	got, err := queries.NewSearchStudentsQueryHandler(suite.pg.DB).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(got, queries.MaxSearchResults)
}

func (suite *QueriesIntegrationTestSuite) TestGetOperatorProductsAndGetProduct() {
	suite.pg.SeedProduct(suite.T(), suite.operator, "Algebra", 4)
	suite.pg.SeedProduct(suite.T(), kernel.NewUUID(), "Not Mine", 4)

	listQuery, err := queries.NewGetOperatorProductsQuery(suite.operator)
	suite.Require().NoError(err)
	products, err := queries.NewGetOperatorProductsQueryHandler(suite.pg.DB).Handle(context.Background(), listQuery)
	suite.Require().NoError(err)
	suite.Require().Len(products, 2)
	suite.Equal("Algebra", products[0].Name)
	suite.Equal("Arabic Grammar", products[1].Name)

	getQuery, err := queries.NewGetProductQuery(suite.product.ID())
	suite.Require().NoError(err)
	p, err := queries.NewGetProductQueryHandler(suite.pg.DB).Handle(context.Background(), getQuery)
	suite.Require().NoError(err)
	suite.Equal(suite.product.ID(), p.ID)
	suite.True(p.Price.Equal(suite.product.Price()))
	suite.True(p.AcceptsInstapay)

	missing, err := queries.NewGetProductQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = queries.NewGetProductQueryHandler(suite.pg.DB).Handle(context.Background(), missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestHandle_NotConstructed() {
	_, err := queries.NewGetProductQueryHandler(suite.pg.DB).Handle(context.Background(), queries.GetProductQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetProductQueryIsNotConstructed)
}
