package http

import (
	"net/http"
	"strconv"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"
	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
)

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, badRequest("id must be an integer")
	}
	return id, nil
}

func (s *Server) RegisterClient(c echo.Context) error {
	var req RegisterClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := client.ParseCategory(req.Category)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRegisterClientCommand(req.toDomain(), category)
	if err != nil {
		return err
	}
	created, err := s.h.RegisterClient.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, clientResponse(created))
}

// SearchClients handles GET /api/v1/clients?q= - an empty query lists every client.
func (s *Server) SearchClients(c echo.Context) error {
	found, err := s.h.Clients.Search(c.Request().Context(), queries.NewSearchClientsQuery(c.QueryParam("q")))
	if err != nil {
		return err
	}

	resp := make([]ClientResponse, 0, len(found))
	for _, cl := range found {
		resp = append(resp, clientResponse(cl))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) GetClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetClientQuery(id)
	if err != nil {
		return err
	}
	found, err := s.h.Clients.Get(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientResponse(found))
}

func (s *Server) UpdateClientContacts(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ContactsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateClientContactsCommand(id, req.toDomain())
	if err != nil {
		return err
	}
	updated, err := s.h.UpdateClientContacts.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientResponse(updated))
}

// DeleteClient handles DELETE /api/v1/clients/:id - refused while a parcel references the client.
func (s *Server) DeleteClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteClientCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.DeleteClient.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CountParcelsBySender(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewCountParcelsBySenderQuery(id)
	if err != nil {
		return err
	}
	count, err := s.h.CountParcelsBySender.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

func (s *Server) RegisterOperator(c echo.Context) error {
	var req RegisterOperatorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterOperatorCommand(req.Name)
	if err != nil {
		return err
	}
	created, err := s.h.RegisterOperator.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, operatorResponse(created))
}

func (s *Server) ListOperators(c echo.Context) error {
	found, err := s.h.Operators.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]OperatorResponse, 0, len(found))
	for _, o := range found {
		resp = append(resp, operatorResponse(o))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOperator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	found, err := s.h.Operators.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, operatorResponse(found))
}

func (s *Server) DeleteOperator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOperatorCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.DeleteOperator.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) AddDeliveryPoint(c echo.Context) error {
	var req AddDeliveryPointRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	channel, err := parcel.ParseChannel(req.Channel)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAddDeliveryPointCommand(channel, req.Address, req.PostalCode, req.Organization)
	if err != nil {
		return err
	}
	created, err := s.h.AddDeliveryPoint.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, deliveryPointResponse(created))
}

// ListDeliveryPoints handles GET /api/v1/delivery-points, optionally filtered by ?channel=.
func (s *Server) ListDeliveryPoints(c echo.Context) error {
	var channel *parcel.Channel
	if raw := c.QueryParam("channel"); raw != "" {
		parsed, err := parcel.ParseChannel(raw)
		if err != nil {
			return err
		}
		channel = &parsed
	}

	found, err := s.h.DeliveryPoints.List(c.Request().Context(), channel)
	if err != nil {
		return err
	}

	resp := make([]DeliveryPointResponse, 0, len(found))
	for _, d := range found {
		resp = append(resp, deliveryPointResponse(d))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDeliveryPoint(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	found, err := s.h.DeliveryPoints.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deliveryPointResponse(found))
}

func (s *Server) DeleteDeliveryPoint(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteDeliveryPointCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.DeleteDeliveryPoint.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
