// Package client manages the people the business transports.
package client

import (
	"context"
	"log/slog"

	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/coordinator"
	"github.com/rpggio/caredesk/internal/domain/status"
	"github.com/rpggio/caredesk/internal/listview"
)

// Plan management values.
const (
	NDISManaged = 0
	PlanManaged = 1
)

// Client is one document of the clients collection.
type Client struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name" validate:"required,notblank"`
	Email                string  `json:"email" validate:"required,email"`
	Phone                string  `json:"phone" validate:"required,notblank"`
	ClientSpec           string  `json:"clientSpec"`
	Coordinator          string  `json:"coordinator"`
	FundsQuarantine      float64 `json:"fundsQuarantine"`
	Address              string  `json:"address" validate:"required,notblank"`
	NDISNumber           string  `json:"ndisNumber" validate:"required,notblank"`
	DOBNumber            string  `json:"dobNumber"`
	PlanManagementDetail int     `json:"planManagementDetail" validate:"oneof=0 1"`
	Status               string  `json:"status,omitempty"`
}

// Definition configures the clients collection.
func Definition() collection.Definition[Client] {
	return collection.Definition[Client]{
		Collection: docstore.Clients,
		Reads:      []string{docstore.Coordinators},
		List: listview.Config[Client]{
			Fields: map[string]listview.Accessor[Client]{
				"name":                 func(c Client) any { return c.Name },
				"ndisNumber":           func(c Client) any { return c.NDISNumber },
				"email":                func(c Client) any { return c.Email },
				"phone":                func(c Client) any { return c.Phone },
				"dobNumber":            func(c Client) any { return c.DOBNumber },
				"clientSpec":           func(c Client) any { return c.ClientSpec },
				"coordinator":          func(c Client) any { return c.Coordinator },
				"fundsQuarantine":      func(c Client) any { return c.FundsQuarantine },
				"address":              func(c Client) any { return c.Address },
				"planManagementDetail": func(c Client) any { return c.PlanManagementDetail },
				"status":               func(c Client) any { return c.Status },
			},
			FilterField: func(c Client) string { return c.Name },
			Status:      func(c Client) string { return c.Status },
			DefaultSort: listview.SortKey{Field: "name", Direction: listview.Asc},
			DefaultSize: 25,
		},
		DeleteStatus: status.NonActive,
		TracksStatus: true,
		Blank:        func() Client { return Client{PlanManagementDetail: NDISManaged} },
	}
}

// Form is the client form plus the coordinators it can pick from.
type Form struct {
	collection.Form[Client]
	Coordinators []collection.Option `json:"coordinators"`
}

// Service manages clients.
type Service struct {
	*collection.Service[Client]
}

// NewService creates a client Service.
func NewService(store collection.Store, caches *cache.Manager, recorder collection.Recorder, logger *slog.Logger) *Service {
	return &Service{Service: collection.NewService(Definition(), store, caches, recorder, logger)}
}

// Form resolves the client form and its coordinator options.
func (s *Service) Form(ctx context.Context, act, id string) (Form, error) {
	form, err := s.Service.Form(ctx, act, id)
	if err != nil {
		return Form{}, err
	}
	snap, err := s.Snapshot(ctx, docstore.Coordinators)
	if err != nil {
		return Form{}, err
	}
	return Form{
		Form:         form,
		Coordinators: collection.Options(snap.Documents, coordinator.NameField),
	}, nil
}
