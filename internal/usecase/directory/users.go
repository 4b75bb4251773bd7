package directory

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type UserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
	Role     identity.Role
}

type ProfileInput struct {
	Email    *string
	FullName *string
	Phone    *string
}

type Users struct {
	repo   domain.Repository
	hasher auth.PasswordHasher
	audit  audit.Sink
	clock  func() time.Time
}

func NewUsers(repo domain.Repository, hasher auth.PasswordHasher, sink audit.Sink) *Users {
	if sink == nil {
		sink = audit.Nop
	}
	return &Users{repo: repo, hasher: hasher, audit: sink, clock: time.Now}
}

// RegisterPatient is the self-service sign-up; the role is always patient.
func (s *Users) RegisterPatient(ctx context.Context, in UserInput) (*models.User, error) {
	in.Role = identity.RolePatient
	return s.create(ctx, identity.Caller{}, in)
}

func (s *Users) Create(ctx context.Context, caller identity.Caller, in UserInput) (*models.User, error) {
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = identity.RolePatient
	}
	return s.create(ctx, caller, in)
}

func (s *Users) create(ctx context.Context, caller identity.Caller, in UserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := validators.NormalizeEmail(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	phone := strings.TrimSpace(in.Phone)

	switch {
	case !validators.IsUsername(username):
		return nil, httperr.InvalidArgument("invalid_username")
	case !validators.IsEmail(email):
		return nil, httperr.InvalidArgument("invalid_email")
	case len(fullName) < 2:
		return nil, httperr.InvalidArgument("invalid_full_name")
	case phone != "" && !validators.IsPhone(phone):
		return nil, httperr.InvalidArgument("invalid_phone")
	case !validators.IsPassword(in.Password):
		return nil, httperr.InvalidArgument("weak_password")
	case !in.Role.Valid():
		return nil, httperr.InvalidArgument("invalid_role")
	}

	if taken, err := s.repo.UsernameTaken(ctx, username, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, httperr.InvalidArgument("username_taken")
	}
	if taken, err := s.repo.EmailTaken(ctx, email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, httperr.InvalidArgument("email_taken")
	}

	hash, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(in.Role),
		FullName:     fullName,
		IsActive:     true,
	}
	if phone != "" {
		u.Phone = &phone
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	actorID := audit.Ptr(caller.UserID)
	if actorID == nil {
		actorID = audit.Ptr(u.ID)
	}
	s.audit.Dispatch(audit.Event{
		ActorID:   actorID,
		ActorRole: string(caller.Role),
		Action:    audit.ActionUserCreated,
		Entity:    "user",
		EntityID:  audit.Ptr(u.ID),
		Metadata:  map[string]string{"role": u.Role},
	})
	return u, nil
}

// Authenticate checks a username-or-email and password pair. Unknown users,
// wrong passwords and inactive accounts are indistinguishable to the caller.
func (s *Users) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	u, err := s.repo.FindUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.Unauthorized("invalid_credentials")
		}
		return nil, err
	}
	if err := s.hasher.Compare([]byte(u.PasswordHash), []byte(password)); err != nil || !u.IsActive {
		return nil, httperr.Unauthorized("invalid_credentials")
	}
	return u, nil
}

func (s *Users) Get(ctx context.Context, caller identity.Caller, id uint) (*models.User, error) {
	if err := caller.RequireSelfOrAdmin(id); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, id)
}

func (s *Users) List(ctx context.Context, caller identity.Caller, role *identity.Role) ([]models.User, error) {
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}
	if role != nil && !role.Valid() {
		return nil, httperr.InvalidArgument("invalid_role")
	}
	return s.repo.ListUsers(ctx, role)
}

func (s *Users) UpdateProfile(ctx context.Context, caller identity.Caller, id uint, in ProfileInput) (*models.User, error) {
	if err := caller.RequireSelfOrAdmin(id); err != nil {
		return nil, err
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := validators.NormalizeEmail(*in.Email)
		if !validators.IsEmail(email) {
			return nil, httperr.InvalidArgument("invalid_email")
		}
		if taken, err := s.repo.EmailTaken(ctx, email, id); err != nil {
			return nil, err
		} else if taken {
			return nil, httperr.InvalidArgument("email_taken")
		}
		u.Email = email
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if len(name) < 2 {
			return nil, httperr.InvalidArgument("invalid_full_name")
		}
		u.FullName = name
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		switch {
		case phone == "":
			u.Phone = nil
		case !validators.IsPhone(phone):
			return nil, httperr.InvalidArgument("invalid_phone")
		default:
			u.Phone = &phone
		}
	}

	u.UpdatedAt = s.clock()
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetActive soft-disables or re-enables an account. Admins cannot disable
// themselves.
func (s *Users) SetActive(ctx context.Context, caller identity.Caller, id uint, active bool) (*models.User, error) {
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}
	if !active && caller.UserID == id {
		return nil, httperr.InvalidArgument("cannot_deactivate_self")
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IsActive == active {
		return u, nil
	}

	u.IsActive = active
	u.UpdatedAt = s.clock()
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:   audit.Ptr(caller.UserID),
		ActorRole: string(caller.Role),
		Action:    audit.ActionUserActive,
		Entity:    "user",
		EntityID:  audit.Ptr(id),
		Metadata:  map[string]bool{"active": active},
	})
	return u, nil
}
