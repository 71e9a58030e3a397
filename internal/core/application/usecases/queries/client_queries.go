package queries

import (
	"context"
	"strings"

	"postal/internal/core/domain/model/client"
	"postal/internal/pkg/guard"
)

var (
	ErrGetClientQueryIsNotConstructed     = errNotConstructed("GetClientQuery")
	ErrSearchClientsQueryIsNotConstructed = errNotConstructed("SearchClientsQuery")
)

type GetClientQuery struct {
	clientID int

	guard guard.ConstructorGuard
}

func NewGetClientQuery(clientID int) (GetClientQuery, error) {
	if err := positiveID("clientId", clientID); err != nil {
		return GetClientQuery{}, err
	}
	return GetClientQuery{clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetClientQuery) Validate() error {
	return q.guard.Validate(ErrGetClientQueryIsNotConstructed)
}

// SearchClientsQuery with empty text lists every client.
type SearchClientsQuery struct {
	text string

	guard guard.ConstructorGuard
}

func NewSearchClientsQuery(text string) SearchClientsQuery {
	return SearchClientsQuery{text: strings.TrimSpace(text), guard: guard.NewConstructorGuard()}
}

func (q SearchClientsQuery) Validate() error {
	return q.guard.Validate(ErrSearchClientsQueryIsNotConstructed)
}

type ClientQueryHandler struct {
	repos Repositories
}

func NewClientQueryHandler(repos Repositories) ClientQueryHandler {
	return ClientQueryHandler{repos: repos}
}

func (h ClientQueryHandler) Get(ctx context.Context, query GetClientQuery) (*client.Client, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repos.ClientRepository().Get(ctx, query.clientID)
}

// Search returns matching clients ordered by id.
func (h ClientQueryHandler) Search(ctx context.Context, query SearchClientsQuery) ([]*client.Client, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repos.ClientRepository().Search(ctx, query.text)
}
