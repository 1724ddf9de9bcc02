// Package http exposes the order engine over a JSON API built on echo.
// Student routes are public; operator routes under /api/v1/admin require an
// HS256 bearer token whose subject is the operator id.
package http

import (
	"context"
	"log/slog"

	"bookdesk/internal/core/application/usecases/commands"
	"bookdesk/internal/core/application/usecases/queries"
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Handler is satisfied by the command and query handlers that return a value.
type Handler[C, R any] interface {
	Handle(ctx context.Context, c C) (R, error)
}

// VoidHandler is satisfied by the command handlers that only report an error.
type VoidHandler[C any] interface {
	Handle(ctx context.Context, c C) error
}

// EvidenceUploader stores an uploaded evidence image and returns its key.
// Discard removes an image whose submission was rejected.
type EvidenceUploader interface {
	Upload(ctx context.Context, body []byte, contentType string) (string, error)
	Discard(ctx context.Context, key string) error
}

// Handlers groups the use cases the API dispatches to.
type Handlers struct {
	SubmitEvidence       Handler[commands.SubmitEvidenceCommand, kernel.UUID]
	ConfirmPayment       VoidHandler[commands.ConfirmPaymentCommand]
	DeclinePayment       VoidHandler[commands.DeclinePaymentCommand]
	ConfirmAllPending    Handler[commands.ConfirmAllPendingCommand, int64]
	SetStudentStatus     VoidHandler[commands.SetStudentStatusCommand]
	BulkSetStudentStatus VoidHandler[commands.BulkSetStudentStatusCommand]
	RedeemOrder          Handler[commands.RedeemOrderCommand, commands.RedemptionResult]
	CreateProduct        Handler[commands.CreateProductCommand, kernel.UUID]
	DeleteProduct        VoidHandler[commands.DeleteProductCommand]

	GetStudentOrder     Handler[queries.GetStudentOrderQuery, queries.StudentOrderResponse]
	GetProductStats     Handler[queries.GetProductStatsQuery, queries.ProductStatsResponse]
	GetStudentProducts  Handler[queries.GetStudentProductsQuery, []queries.StudentProductResponse]
	SearchStudents      Handler[queries.SearchStudentsQuery, []queries.StudentResponse]
	GetOperatorProducts Handler[queries.GetOperatorProductsQuery, []queries.ProductResponse]
	GetProduct          Handler[queries.GetProductQuery, queries.ProductResponse]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers  Handlers
	uploader  EvidenceUploader
	debouncer ports.ScanDebouncer
	jwtSecret []byte
	logger    *slog.Logger
}

func NewServer(
	handlers Handlers,
	uploader EvidenceUploader,
	debouncer ports.ScanDebouncer,
	jwtSecret string,
	logger *slog.Logger,
) *Server {
	return &Server{
		handlers:  handlers,
		uploader:  uploader,
		debouncer: debouncer,
		jwtSecret: []byte(jwtSecret),
		logger:    logger.With("component", "http"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/students", s.SearchStudents)
	api.GET("/students/:studentId/products", s.GetStudentProducts)
	api.GET("/students/:studentId/products/:productId/order", s.GetStudentOrder)
	api.POST("/students/:studentId/products/:productId/evidence", s.SubmitEvidence)
	api.GET("/products/:productId", s.GetProduct)

	admin := api.Group("/admin", OperatorAuth(s.jwtSecret))
	admin.GET("/products", s.GetOperatorProducts)
	admin.POST("/products", s.CreateProduct)
	admin.DELETE("/products/:productId", s.DeleteProduct)
	admin.GET("/products/:productId/stats", s.GetProductStats)
	admin.POST("/products/:productId/confirm-pending", s.ConfirmAllPending)
	admin.PUT("/products/:productId/students/:studentId/status", s.SetStudentStatus)
	admin.POST("/batch-status", s.BulkSetStudentStatus)
	admin.POST("/orders/:orderId/confirm", s.ConfirmPayment)
	admin.POST("/orders/:orderId/decline", s.DeclinePayment)
	admin.POST("/redemptions", s.RedeemOrder)
}
