package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/openretail/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedEntries mints a float into a working account and journals a set of
// categorized debits against it.
func seedEntries(t *testing.T, env *testEnv, amounts map[domain.Category]int64) string {
	t.Helper()
	ctx := context.Background()

	var total int64
	for _, amount := range amounts {
		total += amount
	}
	_, err := env.container.Ledger.Mint(ctx, dto.MintRequest{
		ToAccountID: "shop-float",
		Amount:      decimal.NewFromInt(total + 1_000_000),
		Category:    domain.CategoryInvestment,
	}, testAdminID)
	require.NoError(t, err)

	for category, amount := range amounts {
		_, err := env.container.Ledger.Debit(ctx, dto.DebitRequest{
			AccountID: "shop-float",
			Amount:    decimal.NewFromInt(amount),
			Category:  category,
		}, testAdminID)
		require.NoError(t, err)
	}
	return "shop-float"
}

func TestSummarize_RevenueExpensesAndMargin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.container.Ledger.Mint(ctx, dto.MintRequest{
		ToAccountID: "till",
		Amount:      decimal.NewFromInt(500),
		Category:    domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)

	for category, amount := range map[domain.Category]int64{
		domain.CategoryExpense: 200,
		domain.CategoryTax:     50,
	} {
		_, err := env.container.Ledger.Debit(ctx, dto.DebitRequest{
			AccountID: "till",
			Amount:    decimal.NewFromInt(amount),
			Category:  category,
		}, testAdminID)
		require.NoError(t, err)
	}

	report, err := env.container.Reporting.Summarize(ctx, dto.ReportFilter{}, testAdminID)
	require.NoError(t, err)

	assert.True(t, report.TotalRevenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, report.TotalExpenses.Equal(decimal.NewFromInt(250)), "expenses = expense + tax + payroll")
	assert.True(t, report.NetIncome.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, int64(50), report.MarginPct)
	assert.Equal(t, int64(3), report.EntryCount)
}

func TestSummarize_PayrollCountsAsExpense(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	account := seedEntries(t, env, map[domain.Category]int64{
		domain.CategoryPayroll: 300,
		domain.CategoryExpense: 100,
	})

	filterAccount := account
	report, err := env.container.Reporting.Summarize(ctx, dto.ReportFilter{Account: &filterAccount}, testAdminID)
	require.NoError(t, err)
	assert.True(t, report.TotalExpenses.Equal(decimal.NewFromInt(400)))
}

func TestSummarize_ZeroRevenueMeansZeroMargin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	seedEntries(t, env, map[domain.Category]int64{
		domain.CategoryExpense: 700,
	})

	category := domain.CategoryExpense
	report, err := env.container.Reporting.Summarize(ctx, dto.ReportFilter{Category: &category}, testAdminID)
	require.NoError(t, err)
	assert.True(t, report.NetIncome.IsNegative())
	assert.Equal(t, int64(0), report.MarginPct, "margin must be zero when revenue is zero, not a division error")
}

func TestSummarize_MarginTruncatesTowardZero(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.container.Ledger.Mint(ctx, dto.MintRequest{
		ToAccountID: "till",
		Amount:      decimal.NewFromInt(300),
		Category:    domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)
	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: "till",
		Amount:    decimal.NewFromInt(100),
		Category:  domain.CategoryExpense,
	}, testAdminID)
	require.NoError(t, err)

	// net 200 on revenue 300 is 66.66..%, truncated to 66.
	report, err := env.container.Reporting.Summarize(ctx, dto.ReportFilter{}, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, int64(66), report.MarginPct)
}

func TestSummarize_Deterministic(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	seedEntries(t, env, map[domain.Category]int64{
		domain.CategoryExpense: 125,
		domain.CategoryTax:     75,
		domain.CategoryRefund:  10,
	})

	first, err := env.container.Reporting.Summarize(ctx, dto.ReportFilter{}, testAdminID)
	require.NoError(t, err)
	second, err := env.container.Reporting.Summarize(ctx, dto.ReportFilter{}, testAdminID)
	require.NoError(t, err)

	assert.Equal(t, first.EntryCount, second.EntryCount)
	assert.True(t, first.NetIncome.Equal(second.NetIncome))
	assert.Equal(t, first.MarginPct, second.MarginPct)
	for category, total := range first.ByCategory {
		assert.True(t, total.Equal(second.ByCategory[category]))
	}
}

func TestSummarize_InvalidRangeRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)
	_, err := env.container.Reporting.Summarize(ctx, dto.ReportFilter{From: &from, To: &to}, testAdminID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFilter)
}

func TestSummarize_RequiresViewReports(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cashier, err := env.registerParty(ctx, "cashier", domain.RoleCashier)
	require.NoError(t, err)

	_, err = env.container.Reporting.Summarize(ctx, dto.ReportFilter{}, cashier.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapability)

	accountant, err := env.registerParty(ctx, "accountant", domain.RoleAccountant)
	require.NoError(t, err)
	_, err = env.container.Reporting.Summarize(ctx, dto.ReportFilter{}, accountant.PartyID)
	assert.NoError(t, err)
}

func TestKPIs_VolumeAndActiveAccounts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.container.Ledger.Mint(ctx, dto.MintRequest{
		ToAccountID: "a", Amount: decimal.NewFromInt(100),
	}, testAdminID)
	require.NoError(t, err)
	_, err = env.container.Ledger.Mint(ctx, dto.MintRequest{
		ToAccountID: "b", Amount: decimal.NewFromInt(50),
	}, testAdminID)
	require.NoError(t, err)
	_, err = env.container.Ledger.Transfer(ctx, dto.TransferRequest{
		FromAccountID: "a", ToAccountID: "b", Amount: decimal.NewFromInt(30),
	}, testAdminID)
	require.NoError(t, err)

	snapshot, err := env.container.Reporting.KPIs(ctx, dto.ReportFilter{}, testAdminID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), snapshot.EntryCount)
	assert.True(t, snapshot.TotalVolume.Equal(decimal.NewFromInt(180)))
	assert.True(t, snapshot.AverageEntry.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, int64(2), snapshot.ActiveAccounts)
	assert.True(t, snapshot.ByCategory[domain.CategoryRevenue].Equal(decimal.NewFromInt(150)))
	assert.True(t, snapshot.ByCategory[domain.CategoryTransfer].Equal(decimal.NewFromInt(30)))
}

func TestKPIs_EmptyPeriod(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	snapshot, err := env.container.Reporting.KPIs(ctx, dto.ReportFilter{}, testAdminID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), snapshot.EntryCount)
	assert.True(t, snapshot.TotalVolume.IsZero())
	assert.True(t, snapshot.AverageEntry.IsZero())
}

func TestProfileFor_CumulativeTotals(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	customer, err := env.registerParty(ctx, "customer", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Ledger.Credit(ctx, dto.CreditRequest{
		AccountID: customer.PartyID, Amount: decimal.NewFromInt(1000), Category: domain.CategoryRevenue,
	}, testAdminID)
	require.NoError(t, err)
	_, err = env.container.Ledger.Debit(ctx, dto.DebitRequest{
		AccountID: customer.PartyID, Amount: decimal.NewFromInt(300), Category: domain.CategoryExpense,
	}, customer.PartyID)
	require.NoError(t, err)

	// A party may read its own profile without VIEW_REPORTS.
	profile, err := env.container.Reporting.ProfileFor(ctx, customer.PartyID, customer.PartyID)
	require.NoError(t, err)

	assert.True(t, profile.TotalIn.Equal(decimal.NewFromInt(1000)))
	assert.True(t, profile.TotalOut.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, int64(2), profile.EntryCount)
	assert.True(t, profile.LastActivity.After(profile.FirstActivity))
}

func TestProfileFor_ForeignAccountNeedsViewReports(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice, err := env.registerParty(ctx, "alice", domain.RoleCustomer)
	require.NoError(t, err)
	bob, err := env.registerParty(ctx, "bob", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = env.container.Reporting.ProfileFor(ctx, alice.PartyID, bob.PartyID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapability)
}
