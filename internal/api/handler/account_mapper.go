package handler

import (
	"github.com/thapelomagqazana/accounts-api/internal/core/domain"
	"github.com/thapelomagqazana/accounts-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createAccountRequest) ports.CreateAccountInput {
	return ports.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toUpdateInput(req updateAccountRequest) ports.UpdateAccountInput {
	return ports.UpdateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

// --- Domain → HTTP response ---

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
}

func toAccountListResponse(accounts []*domain.Account) []accountResponse {
	out := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountResponse(a)
	}
	return out
}
