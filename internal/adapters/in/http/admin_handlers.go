package http

import (
	"errors"
	"net/http"
	"strings"

	"bookdesk/internal/core/application/usecases/commands"
	"bookdesk/internal/core/application/usecases/queries"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/core/domain/model/product"
	"bookdesk/internal/core/domain/services"
	"bookdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var errDuplicateScan = errors.New("duplicate scan ignored")

type productIDResponse struct {
	Response
	ID string `json:"id"`
}

type confirmedResponse struct {
	Response
	Confirmed int64 `json:"confirmed"`
}

// GetOperatorProducts handles GET /api/v1/admin/products.
func (s *Server) GetOperatorProducts(ctx echo.Context) error {
	query, err := queries.NewGetOperatorProductsQuery(operatorID(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	products, err := s.handlers.GetOperatorProducts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]ProductJSON, len(products))
	for i, p := range products {
		response[i] = toProductJSON(p)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/admin/products. Both wallets are
// accepted unless the request turns one off.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var req CreateProductRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("price", err))
	}
	kind, err := product.ParseKind(req.Kind)
	if err != nil {
		return s.fail(ctx, err)
	}

	payment := product.DefaultPaymentOptions(req.PaymentPhoneNumber)
	if req.AcceptsVodafoneCash != nil {
		payment.AcceptsVodafoneCash = *req.AcceptsVodafoneCash
	}
	if req.AcceptsInstapay != nil {
		payment.AcceptsInstapay = *req.AcceptsInstapay
	}

	cmd, err := commands.NewCreateProductCommand(operatorID(ctx), req.Name, price, req.ClassID, kind, payment)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.handlers.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, productIDResponse{
		Response: Response{Success: true},
		ID:       id.String(),
	})
}

// DeleteProduct handles DELETE /api/v1/admin/products/:productId.
func (s *Server) DeleteProduct(ctx echo.Context) error {
	productID, err := pathID(ctx, "productId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteProductCommand(operatorID(ctx), productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.DeleteProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Response{Success: true})
}

// GetProductStats handles GET /api/v1/admin/products/:productId/stats.
func (s *Server) GetProductStats(ctx echo.Context) error {
	productID, err := pathID(ctx, "productId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetProductStatsQuery(operatorID(ctx), productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	stats, err := s.handlers.GetProductStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toStatsJSON(stats))
}

// ConfirmAllPending handles POST /api/v1/admin/products/:productId/confirm-pending.
func (s *Server) ConfirmAllPending(ctx echo.Context) error {
	productID, err := pathID(ctx, "productId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmAllPendingCommand(operatorID(ctx), productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	confirmed, err := s.handlers.ConfirmAllPending.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, confirmedResponse{
		Response:  Response{Success: true},
		Confirmed: confirmed,
	})
}

// SetStudentStatus handles PUT /api/v1/admin/products/:productId/students/:studentId/status.
func (s *Server) SetStudentStatus(ctx echo.Context) error {
	productID, err := pathID(ctx, "productId")
	if err != nil {
		return s.fail(ctx, err)
	}
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req SetStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSetStudentStatusCommand(operatorID(ctx), studentID, productID, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.SetStudentStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Response{Success: true})
}

// BulkSetStudentStatus handles POST /api/v1/admin/batch-status.
func (s *Server) BulkSetStudentStatus(ctx echo.Context) error {
	var req BatchStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	productID, err := parseIDs("productId", []string{req.ProductID})
	if err != nil {
		return s.fail(ctx, err)
	}
	studentIDs, err := parseIDs("studentIds", req.StudentIDs)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewBulkSetStudentStatusCommand(operatorID(ctx), productID[0], studentIDs, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.BulkSetStudentStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Response{Success: true})
}

// ConfirmPayment handles POST /api/v1/admin/orders/:orderId/confirm.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(operatorID(ctx), orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Response{Success: true})
}

// DeclinePayment handles POST /api/v1/admin/orders/:orderId/decline.
func (s *Server) DeclinePayment(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeclinePaymentCommand(operatorID(ctx), orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.DeclinePayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Response{Success: true})
}

// RedeemOrder handles POST /api/v1/admin/redemptions. Outcomes other than
// DELIVERED are still answered with 200; success reports whether goods
// changed hands on this call.
func (s *Server) RedeemOrder(ctx echo.Context) error {
	var req RedemptionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return badRequest(ctx, errs.NewValueIsRequiredError("code"))
	}
	productIDs, err := parseIDs("productIds", req.ProductIDs)
	if err != nil {
		return s.fail(ctx, err)
	}

	operator := operatorID(ctx)
	if s.debouncer.SeenRecently(ctx.Request().Context(), operator.String(), code) {
		return failure(ctx, http.StatusTooManyRequests, errDuplicateScan)
	}

	cmd, err := commands.NewRedeemOrderCommand(code, &operator, productIDs)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.RedeemOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := RedemptionJSON{
		Success:     result.Outcome == services.OutcomeDelivered,
		Outcome:     result.Outcome.String(),
		Message:     result.Message,
		StudentName: result.StudentName,
		ProductName: result.ProductName,
	}
	if !result.OrderID.IsZero() {
		response.OrderID = result.OrderID.String()
	}

	return ctx.JSON(http.StatusOK, response)
}
