package services_test

import (
	"context"
	"testing"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/openretail/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredit_CreatesAccountImplicitly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cashier, err := env.registerParty(ctx, "cashier", domain.RoleCashier)
	require.NoError(t, err)
	customer, err := env.registerParty(ctx, "customer", domain.RoleCustomer)
	require.NoError(t, err)

	entry, err := env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(500),
		Category:  domain.CategoryRevenue,
	}, cashier.PartyID)
	require.NoError(t, err)

	assert.NotEmpty(t, entry.EntryID)
	assert.Equal(t, int64(1), entry.Sequence)
	assert.Nil(t, entry.Origin)
	require.NotNil(t, entry.Destination)
	assert.Equal(t, customer.PartyID, *entry.Destination)

	balance, err := env.container.Ledger.GetBalance(ctx, customer.PartyID, customer.PartyID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(500)))
}

func TestCredit_RejectsInvalidAmountAndCategory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: "acct",
		Amount:    decimal.NewFromInt(-10),
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: "acct",
		Amount:    decimal.Zero,
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: "acct",
		Amount:    decimal.NewFromInt(10),
		Category:  domain.Category("BOGUS"),
	}, testAdminID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Nothing was committed.
	supply, err := env.container.Ledger.TotalSupply(ctx, testAdminID)
	require.NoError(t, err)
	assert.True(t, supply.IsZero())
}

func TestCredit_RequiresProcessPayments(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	clerk, err := env.registerParty(ctx, "clerk", domain.RoleClerk)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: "acct",
		Amount:    decimal.NewFromInt(10),
		Category:  domain.CategoryRevenue,
	}, clerk.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapability)
}

func TestDebit_NeverGoesNegative(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	customer, err := env.registerParty(ctx, "customer", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(100),
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(150),
		Category:  domain.CategoryExpense,
	}, customer.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	// Balance is untouched and no entry was journaled for the failed debit.
	balance, err := env.container.Ledger.GetBalance(ctx, customer.PartyID, customer.PartyID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(100)))

	page, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{}, testAdminID)
	require.NoError(t, err)
	assert.Len(t, page.Entries, 1)
}

func TestDebit_FullBalanceToZero(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	customer, err := env.registerParty(ctx, "customer", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(100),
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(100),
		Category:  domain.CategoryExpense,
	}, customer.PartyID)
	require.NoError(t, err)

	balance, err := env.container.Ledger.GetBalance(ctx, customer.PartyID, customer.PartyID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestDebit_OnlySelfOrAdmin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice, err := env.registerParty(ctx, "alice", domain.RoleCustomer)
	require.NoError(t, err)
	bob, err := env.registerParty(ctx, "bob", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: alice.PartyID,
		Amount:    decimal.NewFromInt(100),
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: alice.PartyID,
		Amount:    decimal.NewFromInt(10),
		Category:  domain.CategoryExpense,
	}, bob.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: alice.PartyID,
		Amount:    decimal.NewFromInt(10),
		Category:  domain.CategoryExpense,
	}, testAdminID)
	assert.NoError(t, err)
}

func TestTransfer_ConservesTotalSupply(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice, err := env.registerParty(ctx, "alice", domain.RoleCustomer)
	require.NoError(t, err)
	bob, err := env.registerParty(ctx, "bob", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: alice.PartyID,
		Amount:    decimal.NewFromInt(1000),
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	before, err := env.container.Ledger.TotalSupply(ctx, testAdminID)
	require.NoError(t, err)

	entry, err := env.container.Ledger.Transfer(ctx, dto.TransferRequest{
		FromAccountID: alice.PartyID,
		ToAccountID:   bob.PartyID,
		Amount:        decimal.NewFromInt(400),
	}, alice.PartyID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryTransfer, entry.Category)

	after, err := env.container.Ledger.TotalSupply(ctx, testAdminID)
	require.NoError(t, err)
	assert.True(t, before.Equal(after), "transfer must conserve total supply")

	aliceBalance, _ := env.container.Ledger.GetBalance(ctx, alice.PartyID, testAdminID)
	bobBalance, _ := env.container.Ledger.GetBalance(ctx, bob.PartyID, testAdminID)
	assert.True(t, aliceBalance.Equal(decimal.NewFromInt(600)))
	assert.True(t, bobBalance.Equal(decimal.NewFromInt(400)))
}

func TestTransfer_FailedDebitLeavesNoTrace(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice, err := env.registerParty(ctx, "alice", domain.RoleCustomer)
	require.NoError(t, err)
	bob, err := env.registerParty(ctx, "bob", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: alice.PartyID,
		Amount:    decimal.NewFromInt(100),
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	_, err = env.container.Ledger.Transfer(ctx, dto.TransferRequest{
		FromAccountID: alice.PartyID,
		ToAccountID:   bob.PartyID,
		Amount:        decimal.NewFromInt(500),
	}, alice.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	// Neither side moved and no journal entry exists for the attempt.
	bobBalance, _ := env.container.Ledger.GetBalance(ctx, bob.PartyID, testAdminID)
	assert.True(t, bobBalance.IsZero())

	page, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{}, testAdminID)
	require.NoError(t, err)
	assert.Len(t, page.Entries, 1)
}

func TestTransfer_SameAccountRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice, err := env.registerParty(ctx, "alice", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Transfer(ctx, dto.TransferRequest{
		FromAccountID: alice.PartyID,
		ToAccountID:   alice.PartyID,
		Amount:        decimal.NewFromInt(10),
	}, alice.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMintAndBurn_AdminOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	manager, err := env.registerParty(ctx, "manager", domain.RoleManager)
	require.NoError(t, err)

	_, err = env.container.Ledger.Mint(ctx, dto.MintRequest{
		ToAccountID: "treasury",
		Amount:      decimal.NewFromInt(1000),
	}, manager.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	minted, err := env.container.Ledger.Mint(ctx, dto.MintRequest{
		ToAccountID: "treasury",
		Amount:      decimal.NewFromInt(1000),
	}, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryRevenue, minted.Category)
	assert.Nil(t, minted.Origin)

	burned, err := env.container.Ledger.Burn(ctx, dto.BurnRequest{
		FromAccountID: "treasury",
		Amount:        decimal.NewFromInt(400),
	}, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryExpense, burned.Category)
	assert.Nil(t, burned.Destination)

	supply, err := env.container.Ledger.TotalSupply(ctx, testAdminID)
	require.NoError(t, err)
	assert.True(t, supply.Equal(decimal.NewFromInt(600)))

	_, err = env.container.Ledger.Burn(ctx, dto.BurnRequest{
		FromAccountID: "treasury",
		Amount:        decimal.NewFromInt(10_000),
	}, testAdminID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
}

func TestEveryMutationJournaled(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice, err := env.registerParty(ctx, "alice", domain.RoleCustomer)
	require.NoError(t, err)
	bob, err := env.registerParty(ctx, "bob", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: alice.PartyID, Amount: decimal.NewFromInt(300), Category: domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)
	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: alice.PartyID, Amount: decimal.NewFromInt(50), Category: domain.CategoryExpense,
	}, alice.PartyID)
	require.NoError(t, err)
	_, err = env.container.Ledger.Transfer(ctx, dto.TransferRequest{
		FromAccountID: alice.PartyID, ToAccountID: bob.PartyID, Amount: decimal.NewFromInt(100),
	}, alice.PartyID)
	require.NoError(t, err)

	page, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{}, testAdminID)
	require.NoError(t, err)
	require.Len(t, page.Entries, 3)

	// Sequences are strictly increasing in insertion order.
	for i := 1; i < len(page.Entries); i++ {
		assert.Greater(t, page.Entries[i].Sequence, page.Entries[i-1].Sequence)
	}
}

func TestTierRaisedAtBoundaryAndMonotonic(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	customer, err := env.registerParty(ctx, "bigspender", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(2_000_000),
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	// Spend up to one below the Silver boundary: still Bronze.
	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(999_999),
		Category:  domain.CategoryExpense,
	}, customer.PartyID)
	require.NoError(t, err)

	party, err := env.container.Party.GetPartyByID(ctx, customer.PartyID, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierBronze, party.Tier)

	// One more unit crosses the boundary exactly: Silver.
	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(1),
		Category:  domain.CategoryExpense,
	}, customer.PartyID)
	require.NoError(t, err)

	party, err = env.container.Party.GetPartyByID(ctx, customer.PartyID, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierSilver, party.Tier)
	assert.Equal(t, int64(99), party.LoyaltyPoints)
}

func TestLoyaltyPointsAccrueOnSpend(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	customer, err := env.registerParty(ctx, "shopper", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(100_000),
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(25_000),
		Category:  domain.CategoryExpense,
	}, customer.PartyID)
	require.NoError(t, err)

	party, err := env.container.Party.GetPartyByID(ctx, customer.PartyID, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), party.LoyaltyPoints)

	// Crediting earns nothing.
	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: customer.PartyID,
		Amount:    decimal.NewFromInt(50_000),
		Category:  domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	party, err = env.container.Party.GetPartyByID(ctx, customer.PartyID, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), party.LoyaltyPoints)
}
