package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PartyRepository ---
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	var party *domain.Party
	if args.Get(0) != nil {
		party = args.Get(0).(*domain.Party)
	}
	return party, args.Error(1)
}

func (m *MockPartyRepository) FindPartyByEmail(ctx context.Context, email string) (*domain.Party, error) {
	args := m.Called(ctx, email)
	var party *domain.Party
	if args.Get(0) != nil {
		party = args.Get(0).(*domain.Party)
	}
	return party, args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, limit int, nextToken *string) ([]domain.Party, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var parties []domain.Party
	if args.Get(0) != nil {
		parties = args.Get(0).([]domain.Party)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return parties, token, args.Error(2)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

// --- Test Suite ---
type AuthzServiceTestSuite struct {
	suite.Suite
	mockPartyRepo *MockPartyRepository
	service       portssvc.AuthorizerSvc
}

func (suite *AuthzServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	cfg := domain.LedgerConfig{AdminPartyID: testAdminID}
	suite.service = services.NewAuthzService(cfg, suite.mockPartyRepo)
}

func (suite *AuthzServiceTestSuite) TestAuthorizeAdmin() {
	ctx := context.Background()

	suite.NoError(suite.service.AuthorizeAdmin(ctx, testAdminID))
	suite.ErrorIs(suite.service.AuthorizeAdmin(ctx, "someone-else"), apperrors.ErrUnauthorized)
	suite.ErrorIs(suite.service.AuthorizeAdmin(ctx, ""), apperrors.ErrUnauthorized)
}

func (suite *AuthzServiceTestSuite) TestAuthorizeSelf() {
	ctx := context.Background()

	suite.NoError(suite.service.AuthorizeSelf(ctx, "acct-1", "acct-1"))
	suite.NoError(suite.service.AuthorizeSelf(ctx, testAdminID, "acct-1"))
	suite.ErrorIs(suite.service.AuthorizeSelf(ctx, "acct-2", "acct-1"), apperrors.ErrUnauthorized)
	// An empty principal never matches, even against an empty account id.
	suite.ErrorIs(suite.service.AuthorizeSelf(ctx, "", ""), apperrors.ErrUnauthorized)
}

func (suite *AuthzServiceTestSuite) TestAuthorizeCapability_AdminBypassesLookup() {
	ctx := context.Background()

	suite.NoError(suite.service.AuthorizeCapability(ctx, testAdminID, domain.CapManageLedger))
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "FindPartyByID")
}

func (suite *AuthzServiceTestSuite) TestAuthorizeCapability_ActivePartyWithGrant() {
	ctx := context.Background()
	cashier := &domain.Party{
		PartyID: "cashier-1",
		Role:    domain.RoleCashier,
		Status:  domain.StatusActive,
	}
	suite.mockPartyRepo.On("FindPartyByID", ctx, "cashier-1").Return(cashier, nil)

	suite.NoError(suite.service.AuthorizeCapability(ctx, "cashier-1", domain.CapProcessPayments))
	suite.ErrorIs(suite.service.AuthorizeCapability(ctx, "cashier-1", domain.CapViewReports), apperrors.ErrInsufficientCapability)
}

func (suite *AuthzServiceTestSuite) TestAuthorizeCapability_InactiveParty() {
	ctx := context.Background()
	for _, status := range []domain.PartyStatus{domain.StatusSuspended, domain.StatusOnLeave, domain.StatusTerminated} {
		party := &domain.Party{PartyID: "p", Role: domain.RoleManager, Status: status}
		repo := new(MockPartyRepository)
		repo.On("FindPartyByID", ctx, "p").Return(party, nil)
		svc := services.NewAuthzService(domain.LedgerConfig{AdminPartyID: testAdminID}, repo)

		suite.ErrorIs(svc.AuthorizeCapability(ctx, "p", domain.CapViewReports), apperrors.ErrInactiveParty)
	}
}

func (suite *AuthzServiceTestSuite) TestAuthorizeCapability_UnknownPrincipal() {
	ctx := context.Background()
	suite.mockPartyRepo.On("FindPartyByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	suite.ErrorIs(suite.service.AuthorizeCapability(ctx, "ghost", domain.CapViewReports), apperrors.ErrUnauthorized)
}

func (suite *AuthzServiceTestSuite) TestAuthorizeCapability_StorageFault() {
	ctx := context.Background()
	suite.mockPartyRepo.On("FindPartyByID", ctx, "p").Return(nil, errors.New("connection reset"))

	suite.ErrorIs(suite.service.AuthorizeCapability(ctx, "p", domain.CapViewReports), apperrors.ErrStorageFault)
}

func TestAuthzServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthzServiceTestSuite))
}
