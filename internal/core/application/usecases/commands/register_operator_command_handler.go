package commands

import (
	"context"

	"postal/internal/core/domain/model/operator"
)

type RegisterOperatorCommandHandler struct {
	uowFactory OperatorUoWFactory
}

func NewRegisterOperatorCommandHandler(uowFactory OperatorUoWFactory) RegisterOperatorCommandHandler {
	return RegisterOperatorCommandHandler{uowFactory: uowFactory}
}

func (h RegisterOperatorCommandHandler) Handle(ctx context.Context, cmd RegisterOperatorCommand) (*operator.Operator, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OperatorRepository()

	id, err := repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	op, err := operator.NewOperator(id, cmd.Name())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, op); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return op, nil
}
