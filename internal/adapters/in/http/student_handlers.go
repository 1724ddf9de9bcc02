package http

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"bookdesk/internal/core/application/usecases/commands"
	"bookdesk/internal/core/application/usecases/queries"
	"bookdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type orderIDResponse struct {
	Response
	OrderID string `json:"orderId"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Response{Success: true})
}

// SearchStudents handles GET /api/v1/students?q=&classId=.
func (s *Server) SearchStudents(ctx echo.Context) error {
	var classID *int
	if raw := ctx.QueryParam("classId"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("classId", err))
		}
		classID = &v
	}

	query, err := queries.NewSearchStudentsQuery(ctx.QueryParam("q"), classID)
	if err != nil {
		return s.fail(ctx, err)
	}

	students, err := s.handlers.SearchStudents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]StudentJSON, len(students))
	for i, st := range students {
		response[i] = StudentJSON{
			ID:      st.ID.String(),
			Name:    st.Name,
			SeatID:  st.SeatID,
			ClassID: st.ClassID,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStudentProducts handles GET /api/v1/students/:studentId/products.
func (s *Server) GetStudentProducts(ctx echo.Context) error {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetStudentProductsQuery(studentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	products, err := s.handlers.GetStudentProducts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]StudentProductJSON, len(products))
	for i, p := range products {
		response[i] = StudentProductJSON{
			ProductJSON:    toProductJSON(p.Product),
			OrderStatus:    p.OrderStatus,
			RedemptionCode: p.RedemptionCode,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStudentOrder handles GET /api/v1/students/:studentId/products/:productId/order.
func (s *Server) GetStudentOrder(ctx echo.Context) error {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		return s.fail(ctx, err)
	}
	productID, err := pathID(ctx, "productId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetStudentOrderQuery(studentID, productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.GetStudentOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := StudentOrderJSON{Status: o.Status}
	if o.Found {
		createdAt := o.CreatedAt
		response.OrderID = o.OrderID.String()
		response.EvidenceURL = o.EvidenceURL
		response.EvidenceKey = o.EvidenceKey
		response.ActivationPhone = o.ActivationPhone
		response.RedemptionCode = o.RedemptionCode
		response.CreatedAt = &createdAt
	}

	return ctx.JSON(http.StatusOK, response)
}

// SubmitEvidence handles POST /api/v1/students/:studentId/products/:productId/evidence.
// The multipart form carries the screenshot as "file" and an optional
// "activationPhone". The image is stored before the order is touched and
// removed again when the submission is rejected.
func (s *Server) SubmitEvidence(ctx echo.Context) error {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		return s.fail(ctx, err)
	}
	productID, err := pathID(ctx, "productId")
	if err != nil {
		return s.fail(ctx, err)
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return badRequest(ctx, errs.NewValueIsRequiredErrorWithCause("file", err))
	}
	file, err := header.Open()
	if err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("file", err))
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxEvidenceBytes+1))
	if err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("file", err))
	}
	if len(body) > maxEvidenceBytes {
		return failure(ctx, http.StatusRequestEntityTooLarge, errs.NewValueIsOutOfRangeError(
			"file", len(body), 1, maxEvidenceBytes))
	}

	key, err := s.uploader.Upload(ctx.Request().Context(), body, header.Header.Get(echo.HeaderContentType))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitEvidenceCommand(studentID, productID, key, ctx.FormValue("activationPhone"))
	if err != nil {
		s.discardEvidence(ctx, key)
		return s.fail(ctx, err)
	}

	orderID, err := s.handlers.SubmitEvidence.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.discardEvidence(ctx, key)
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderIDResponse{
		Response: Response{Success: true},
		OrderID:  orderID.String(),
	})
}

// discardEvidence runs even when the request context is already cancelled.
func (s *Server) discardEvidence(ctx echo.Context, key string) {
	if err := s.uploader.Discard(context.WithoutCancel(ctx.Request().Context()), key); err != nil {
		s.logger.Warn("evidence left in storage", "key", key, "error", err)
	}
}

// GetProduct handles GET /api/v1/products/:productId.
func (s *Server) GetProduct(ctx echo.Context) error {
	productID, err := pathID(ctx, "productId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetProductQuery(productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.handlers.GetProduct.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProductJSON(p))
}
