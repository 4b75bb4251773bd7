package directory

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Categories struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewCategories(repo domain.Repository, sink audit.Sink) *Categories {
	if sink == nil {
		sink = audit.Nop
	}
	return &Categories{repo: repo, audit: sink}
}

func (s *Categories) List(ctx context.Context, caller identity.Caller, includeInactive bool) ([]models.Category, error) {
	return s.repo.ListCategories(ctx, includeInactive && caller.IsAdmin())
}

func (s *Categories) Get(ctx context.Context, id uint) (*models.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Categories) Create(ctx context.Context, caller identity.Caller, name, description string) (*models.Category, error) {
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, httperr.InvalidArgument("name_required")
	}

	c := &models.Category{Name: name, Description: strings.TrimSpace(description), IsActive: true}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:   audit.Ptr(caller.UserID),
		ActorRole: string(caller.Role),
		Action:    audit.ActionCategoryCreated,
		Entity:    "category",
		EntityID:  audit.Ptr(c.ID),
	})
	return c, nil
}
