package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/mocks"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type stubHasher struct{}

func (stubHasher) Hash(p []byte) ([]byte, error) { return []byte("hashed-" + string(p)), nil }
func (stubHasher) Compare(hash, p []byte) error {
	if string(hash) != "hashed-"+string(p) {
		return errors.New("mismatch")
	}
	return nil
}

func registration() UserInput {
	return UserInput{
		Username: "ana_souza",
		Email:    "  Ana@Example.COM ",
		Password: "Secret1",
		FullName: "Ana Souza",
		Phone:    "+55 (11) 91234-5678",
		Role:     identity.RoleAdmin,
	}
}

func TestRegisterPatient(t *testing.T) {
	repo := new(mocks.DirectoryRepository)
	repo.On("UsernameTaken", mock.Anything, "ana_souza", uint(0)).Return(false, nil)
	repo.On("EmailTaken", mock.Anything, "ana@example.com", uint(0)).Return(false, nil)
	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = 12 }).
		Return(nil)

	u, err := NewUsers(repo, stubHasher{}, nil).RegisterPatient(context.Background(), registration())

	require.NoError(t, err)
	assert.Equal(t, string(identity.RolePatient), u.Role)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "hashed-Secret1", u.PasswordHash)
	assert.True(t, u.IsActive)
	repo.AssertExpectations(t)
}

func TestRegisterPatient_Rejects(t *testing.T) {
	cases := map[string]func(in *UserInput){
		"invalid_username":  func(in *UserInput) { in.Username = "a b" },
		"invalid_email":     func(in *UserInput) { in.Email = "nope" },
		"invalid_phone":     func(in *UserInput) { in.Phone = "call me" },
		"weak_password":     func(in *UserInput) { in.Password = "123" },
		"invalid_full_name": func(in *UserInput) { in.FullName = "A" },
	}
	svc := NewUsers(new(mocks.DirectoryRepository), stubHasher{}, nil)

	for code, mutate := range cases {
		in := registration()
		mutate(&in)
		_, err := svc.RegisterPatient(context.Background(), in)
		assert.Equal(t, code, httperr.CodeOf(err))
	}
}

func TestRegisterPatient_Taken(t *testing.T) {
	repo := new(mocks.DirectoryRepository)
	repo.On("UsernameTaken", mock.Anything, "ana_souza", uint(0)).Return(false, nil)
	repo.On("EmailTaken", mock.Anything, "ana@example.com", uint(0)).Return(true, nil)

	_, err := NewUsers(repo, stubHasher{}, nil).RegisterPatient(context.Background(), registration())
	assert.Equal(t, "email_taken", httperr.CodeOf(err))
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	repo := new(mocks.DirectoryRepository)
	active := &models.User{ID: 3, Username: "ana", PasswordHash: "hashed-pw", IsActive: true}
	inactive := &models.User{ID: 4, Username: "old", PasswordHash: "hashed-pw", IsActive: false}
	repo.On("FindUserByLogin", mock.Anything, "ana").Return(active, nil)
	repo.On("FindUserByLogin", mock.Anything, "old").Return(inactive, nil)
	repo.On("FindUserByLogin", mock.Anything, "ghost").Return(nil, httperr.NotFound("user_not_found"))

	svc := NewUsers(repo, stubHasher{}, nil)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, " ana ", "pw")
	require.NoError(t, err)
	assert.Equal(t, uint(3), u.ID)

	for _, tc := range [][2]string{{"ana", "bad"}, {"old", "pw"}, {"ghost", "pw"}} {
		_, err := svc.Authenticate(ctx, tc[0], tc[1])
		assert.Equal(t, "invalid_credentials", httperr.CodeOf(err), tc[0])
	}
}

func TestSetActive(t *testing.T) {
	repo := new(mocks.DirectoryRepository)
	u := &models.User{ID: 5, IsActive: true}
	repo.On("GetUser", mock.Anything, uint(5)).Return(u, nil)
	repo.On("UpdateUser", mock.Anything, u).Return(nil)

	sink := new(mocks.AuditSink)
	sink.On("Dispatch", mock.Anything).Once()
	svc := NewUsers(repo, stubHasher{}, sink)
	ctx := context.Background()

	_, err := svc.SetActive(ctx, admin, admin.UserID, false)
	assert.Equal(t, "cannot_deactivate_self", httperr.CodeOf(err))

	_, err = svc.SetActive(ctx, patient, 5, false)
	assert.True(t, httperr.IsKind(err, httperr.KindUnauthorized))

	got, err := svc.SetActive(ctx, admin, 5, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	sink.AssertExpectations(t)
}

func TestUpdateProfile_OwnerOnly(t *testing.T) {
	repo := new(mocks.DirectoryRepository)
	u := &models.User{ID: 2, Email: "old@example.com", FullName: "Pat"}
	repo.On("GetUser", mock.Anything, uint(2)).Return(u, nil)
	repo.On("EmailTaken", mock.Anything, "new@example.com", uint(2)).Return(false, nil)
	repo.On("UpdateUser", mock.Anything, u).Return(nil)

	svc := NewUsers(repo, stubHasher{}, nil)
	email, phone := "NEW@example.com", ""

	_, err := svc.UpdateProfile(context.Background(), identity.Caller{UserID: 3, Role: identity.RolePatient}, 2, ProfileInput{Email: &email})
	assert.True(t, httperr.IsKind(err, httperr.KindUnauthorized))

	got, err := svc.UpdateProfile(context.Background(), patient, 2, ProfileInput{Email: &email, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Nil(t, got.Phone)
}

func TestRegisterPatient_HashFailureWritesNothing(t *testing.T) {
	repo := new(mocks.DirectoryRepository)
	repo.On("UsernameTaken", mock.Anything, "ana_souza", uint(0)).Return(false, nil)
	repo.On("EmailTaken", mock.Anything, "ana@example.com", uint(0)).Return(false, nil)

	hasher := new(mocks.PasswordHasher)
	hasher.On("Hash", []byte("Secret1")).Return([]byte(nil), errors.New("entropy exhausted"))

	_, err := NewUsers(repo, hasher, nil).RegisterPatient(context.Background(), registration())

	assert.EqualError(t, err, "entropy exhausted")
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	hasher.AssertExpectations(t)
}
