package http

import (
	"errors"
	"net/http"
	"time"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"
	"postal/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
)

// CreateParcel handles POST /api/v1/parcels - registers a parcel and charges loyalty side effects.
func (s *Server) CreateParcel(c echo.Context) error {
	var req CreateParcelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	parcelType, typeErr := parcel.ParseType(req.Type)
	content, contentErr := parcel.ParseContent(req.Content)
	courier, courierErr := parcel.ParseCourier(req.Courier)
	channel, channelErr := parcel.ParseChannel(req.Channel)
	if err := errors.Join(typeErr, contentErr, courierErr, channelErr); err != nil {
		return err
	}

	cmd, err := commands.NewCreateParcelCommand(commands.CreateParcelParams{
		SenderID:          req.SenderID,
		ReceiverID:        req.ReceiverID,
		Type:              parcelType,
		Content:           content,
		Weight:            req.Weight,
		DeclaredValue:     req.DeclaredValue,
		Courier:           courier,
		Channel:           channel,
		ReceiverCountry:   req.ReceiverCountry,
		Insured:           req.Insured,
		InsuredValue:      req.InsuredValue,
		Dangerous:         req.Dangerous,
		WantsFreeDelivery: req.WantsFreeDelivery,
	})
	if err != nil {
		return err
	}

	result, err := s.h.CreateParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreateParcelResponse{
		Parcel:             parcelResponse(result.Parcel),
		FreeDeliveryDenied: result.FreeDeliveryDenied,
	})
}

// GetParcel is public: anyone holding a tracking code may follow the parcel.
func (s *Server) GetParcel(c echo.Context) error {
	query, err := queries.NewGetParcelQuery(c.Param("code"))
	if err != nil {
		return err
	}
	found, err := s.h.GetParcel.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parcelResponse(found))
}

// SearchParcels handles GET /api/v1/parcels - filters by text, status and creation date.
func (s *Server) SearchParcels(c echo.Context) error {
	var status *parcel.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := parcel.ParseStatus(raw)
		if err != nil {
			return err
		}
		status = &parsed
	}

	var date *time.Time
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			return badRequest("date must be formatted as YYYY-MM-DD")
		}
		date = &parsed
	}

	query, err := queries.NewSearchParcelsQuery(c.QueryParam("q"), status, date)
	if err != nil {
		return err
	}
	found, err := s.h.SearchParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]ParcelResponse, 0, len(found))
	for _, p := range found {
		resp = append(resp, parcelResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// ChangeParcelStatus handles POST /api/v1/parcels/:code/status.
func (s *Server) ChangeParcelStatus(c echo.Context) error {
	var req ChangeStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	next, err := parcel.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewChangeParcelStatusCommand(c.Param("code"), next, req.Note, req.OperatorID)
	if err != nil {
		return err
	}
	updated, err := s.h.ChangeParcelStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parcelResponse(updated))
}

func (s *Server) SimulateDelay(c echo.Context) error {
	cmd, err := commands.NewSimulateDelayCommand(c.Param("code"))
	if err != nil {
		return err
	}
	outcome, err := s.h.SimulateDelay.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, delayResponse(outcome))
}

// QuoteParcel handles POST /api/v1/parcels/:code/quote - prices the parcel, optionally consuming the sender's discount.
func (s *Server) QuoteParcel(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewQuoteParcelCommand(c.Param("code"), req.UseDiscount)
	if err != nil {
		return err
	}
	quote, err := s.h.QuoteParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quoteResponse(quote))
}
