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

func seedMints(t *testing.T, env *testEnv, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := env.container.Ledger.Mint(ctx, dto.MintRequest{
			ToAccountID: "till",
			Amount:      decimal.NewFromInt(int64(i + 1)),
		}, testAdminID)
		require.NoError(t, err)
	}
}

func TestListEntries_PaginationIsRestartable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedMints(t, env, 25)

	firstPage, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{Limit: 10}, testAdminID)
	require.NoError(t, err)
	require.Len(t, firstPage.Entries, 10)
	require.NotNil(t, firstPage.NextToken)

	secondPage, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{
		Limit:     10,
		NextToken: firstPage.NextToken,
	}, testAdminID)
	require.NoError(t, err)
	require.Len(t, secondPage.Entries, 10)
	require.NotNil(t, secondPage.NextToken)

	lastPage, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{
		Limit:     10,
		NextToken: secondPage.NextToken,
	}, testAdminID)
	require.NoError(t, err)
	assert.Len(t, lastPage.Entries, 5)
	assert.Nil(t, lastPage.NextToken)

	// Pages join into the full journal with no gaps or duplicates.
	seen := make(map[int64]bool)
	var previous int64
	for _, page := range [][]dto.EntryResponse{firstPage.Entries, secondPage.Entries, lastPage.Entries} {
		for _, entry := range page {
			assert.Greater(t, entry.Sequence, previous)
			assert.False(t, seen[entry.Sequence])
			seen[entry.Sequence] = true
			previous = entry.Sequence
		}
	}
	assert.Len(t, seen, 25)
}

func TestListEntries_SamePageTwice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedMints(t, env, 8)

	first, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{Limit: 5}, testAdminID)
	require.NoError(t, err)
	again, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{Limit: 5}, testAdminID)
	require.NoError(t, err)

	require.Equal(t, len(first.Entries), len(again.Entries))
	for i := range first.Entries {
		assert.Equal(t, first.Entries[i].EntryID, again.Entries[i].EntryID)
	}
}

func TestListEntries_DefaultAndMaxLimit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedMints(t, env, 30)

	page, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{}, testAdminID)
	require.NoError(t, err)
	assert.Len(t, page.Entries, 20)

	page, err = env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{Limit: 10_000}, testAdminID)
	require.NoError(t, err)
	assert.Len(t, page.Entries, 30)
}

func TestListEntries_CategoryAndAccountFilter(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.container.Ledger.Mint(ctx, dto.MintRequest{
		ToAccountID: "a", Amount: decimal.NewFromInt(100), Category: domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)
	_, err = env.container.Ledger.Mint(ctx, dto.MintRequest{
		ToAccountID: "b", Amount: decimal.NewFromInt(200), Category: domain.CategoryInvestment,
	}, testAdminID)
	require.NoError(t, err)
	_, err = env.container.Ledger.Transfer(ctx, dto.TransferRequest{
		FromAccountID: "b", ToAccountID: "a", Amount: decimal.NewFromInt(50),
	}, testAdminID)
	require.NoError(t, err)

	account := "a"
	page, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{Account: &account}, testAdminID)
	require.NoError(t, err)
	assert.Len(t, page.Entries, 2)

	category := domain.CategoryTransfer
	page, err = env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{Category: &category}, testAdminID)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, string(domain.CategoryTransfer), page.Entries[0].Category)
}

func TestListEntries_OwnAccountWithoutViewReports(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	customer, err := env.registerParty(ctx, "customer", domain.RoleCustomer)
	require.NoError(t, err)
	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: customer.PartyID, Amount: decimal.NewFromInt(10), Category: domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	own := customer.PartyID
	page, err := env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{Account: &own}, customer.PartyID)
	require.NoError(t, err)
	assert.Len(t, page.Entries, 1)

	// Listing the whole journal still needs the capability.
	_, err = env.container.Journal.ListEntries(ctx, dto.ListEntriesParams{}, customer.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapability)
}

func TestGetEntryByID(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	customer, err := env.registerParty(ctx, "customer", domain.RoleCustomer)
	require.NoError(t, err)
	other, err := env.registerParty(ctx, "other", domain.RoleCustomer)
	require.NoError(t, err)

	created, err := env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: customer.PartyID, Amount: decimal.NewFromInt(42), Category: domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	// The touched party can read it.
	entry, err := env.container.Journal.GetEntryByID(ctx, created.EntryID, customer.PartyID)
	require.NoError(t, err)
	assert.Equal(t, created.EntryID, entry.EntryID)

	// An unrelated party without VIEW_REPORTS cannot.
	_, err = env.container.Journal.GetEntryByID(ctx, created.EntryID, other.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapability)

	_, err = env.container.Journal.GetEntryByID(ctx, "no-such-entry", testAdminID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
