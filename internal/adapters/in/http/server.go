// Package http exposes the postal use cases over a JSON API served by echo.
//
// Every /api/v1 route except login and the public parcel lookup requires an
// "Authorization: Bearer <session id>" header naming a live session. Errors are
// returned as {"code": <status>, "message": <text>}.
package http

import (
	"io"
	"net/http"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/services"
	"postal/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Handlers groups the use cases served by the API.
type Handlers struct {
	CreateParcel       commands.CreateParcelCommandHandler
	ChangeParcelStatus commands.ChangeParcelStatusCommandHandler
	SimulateDelay      commands.SimulateDelayCommandHandler
	QuoteParcel        commands.QuoteParcelCommandHandler

	RegisterClient       commands.RegisterClientCommandHandler
	UpdateClientContacts commands.UpdateClientContactsCommandHandler
	DeleteClient         commands.DeleteClientCommandHandler
	RegisterOperator     commands.RegisterOperatorCommandHandler
	DeleteOperator       commands.DeleteOperatorCommandHandler
	AddDeliveryPoint     commands.AddDeliveryPointCommandHandler
	DeleteDeliveryPoint  commands.DeleteDeliveryPointCommandHandler

	Login  commands.LoginCommandHandler
	Logout commands.LogoutCommandHandler
	Users  commands.UserCommandHandler

	GetParcel            queries.GetParcelQueryHandler
	SearchParcels        queries.SearchParcelsQueryHandler
	CountParcelsBySender queries.CountParcelsBySenderQueryHandler
	Clients              queries.ClientQueryHandler
	Operators            queries.OperatorQueryHandler
	DeliveryPoints       queries.DeliveryPointQueryHandler
	Statistics           queries.GetStatisticsQueryHandler
	ListUsers            queries.ListUsersQueryHandler

	// ExportStatistics writes statistics as an xlsx workbook.
	ExportStatistics func(w io.Writer, stats services.Statistics) error
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h        Handlers
	sessions ports.SessionStore
	clock    kernel.Clock
	logger   *zap.Logger
}

func NewServer(h Handlers, sessions ports.SessionStore, clock kernel.Clock, logger *zap.Logger) *Server {
	return &Server{
		h:        h,
		sessions: sessions,
		clock:    clock,
		logger:   logger.With(zap.String("component", "http")),
	}
}

type requestValidator struct {
	validate *validator.Validate
}

func (v requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// Echo builds the router with middleware and every route registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/sessions", s.Login)
	api.GET("/parcels/:code", s.GetParcel)

	secured := api.Group("", s.requireSession)
	secured.DELETE("/sessions/current", s.Logout)

	secured.GET("/users", s.ListUsers)
	secured.POST("/users", s.RegisterUser)
	secured.PUT("/users/:username/role", s.ChangeUserRole)
	secured.PUT("/users/me/password", s.ChangePassword)

	secured.POST("/clients", s.RegisterClient)
	secured.GET("/clients", s.SearchClients)
	secured.GET("/clients/:id", s.GetClient)
	secured.PUT("/clients/:id", s.UpdateClientContacts)
	secured.DELETE("/clients/:id", s.DeleteClient)
	secured.GET("/clients/:id/parcels/count", s.CountParcelsBySender)

	secured.POST("/operators", s.RegisterOperator)
	secured.GET("/operators", s.ListOperators)
	secured.GET("/operators/:id", s.GetOperator)
	secured.DELETE("/operators/:id", s.DeleteOperator)

	secured.POST("/delivery-points", s.AddDeliveryPoint)
	secured.GET("/delivery-points", s.ListDeliveryPoints)
	secured.GET("/delivery-points/:id", s.GetDeliveryPoint)
	secured.DELETE("/delivery-points/:id", s.DeleteDeliveryPoint)

	secured.POST("/parcels", s.CreateParcel)
	secured.GET("/parcels", s.SearchParcels)
	secured.POST("/parcels/:code/status", s.ChangeParcelStatus)
	secured.POST("/parcels/:code/delay", s.SimulateDelay)
	secured.POST("/parcels/:code/quote", s.QuoteParcel)

	secured.GET("/statistics", s.GetStatistics)

	return e
}
