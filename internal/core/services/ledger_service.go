package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/dto"
	"github.com/openretail/ledger_backend/internal/events"
	"github.com/shopspring/decimal"
)

// ledgerService is the single mutation path into balances and the journal.
// Every operation runs authorize, validate, commit, reclassify, notify — in
// that order, with zero side effects before the commit and none after a
// failure.
type ledgerService struct {
	BaseService
	cfg         domain.LedgerConfig
	ledgerRepo  portsrepo.LedgerRepository
	journalRepo portsrepo.JournalRepository
	authorizer  portssvc.AuthorizerSvc
	classifier  *Classifier
	sink        events.Sink
}

// LedgerServiceOption configures optional collaborators of the ledger service.
type LedgerServiceOption func(*ledgerService)

// WithEventSink sets the fire-and-forget notification sink.
func WithEventSink(sink events.Sink) LedgerServiceOption {
	return func(s *ledgerService) {
		s.sink = sink
	}
}

// WithClassifier sets the derived-state classifier run after each mutation.
func WithClassifier(classifier *Classifier) LedgerServiceOption {
	return func(s *ledgerService) {
		s.classifier = classifier
	}
}

// NewLedgerService creates the ledger store service.
func NewLedgerService(cfg domain.LedgerConfig, ledgerRepo portsrepo.LedgerRepository, journalRepo portsrepo.JournalRepository, authorizer portssvc.AuthorizerSvc, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		cfg:         cfg,
		ledgerRepo:  ledgerRepo,
		journalRepo: journalRepo,
		authorizer:  authorizer,
		sink:        events.NoopSink{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateMutation checks amount positivity and category membership before any
// state is touched.
func (s *ledgerService) validateMutation(amount decimal.Decimal, category domain.Category) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if !category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, category)
	}
	return nil
}

// newEntry builds the immutable journal record for a mutation. The logical
// timestamp comes from the configured clock source, never from wall clock
// reads inside the engine.
func (s *ledgerService) newEntry(origin, destination *string, amount decimal.Decimal, category domain.Category, description, principalID string) domain.Entry {
	now := s.cfg.Now()
	return domain.Entry{
		EntryID:     uuid.NewString(),
		Origin:      origin,
		Destination: destination,
		Amount:      amount,
		Category:    category,
		Description: description,
		OccurredAt:  now,
		CreatedAt:   now,
		CreatedBy:   principalID,
	}
}

// commit persists the entry and deltas as one atomic unit, then fans out to the
// classifier and the event sink. spendingAccount is the account whose derived
// state must be refreshed, empty when no party spent.
func (s *ledgerService) commit(ctx context.Context, entry domain.Entry, deltas map[string]decimal.Decimal, spendingAccount string) (*domain.Entry, error) {
	saved, err := s.ledgerRepo.SaveEntry(ctx, entry, deltas)
	if err != nil {
		s.LogError(ctx, err, "Failed to commit ledger mutation", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	if s.classifier != nil && spendingAccount != "" {
		profile, perr := s.profileFor(ctx, spendingAccount)
		if perr != nil {
			s.LogError(ctx, perr, "Failed to recompute cumulative profile", slog.String("account_id", spendingAccount))
		} else if rerr := s.classifier.ReclassifyAfterSpend(ctx, spendingAccount, profile, saved.Amount, saved.CreatedBy); rerr != nil {
			s.LogError(ctx, rerr, "Failed to reclassify party", slog.String("account_id", spendingAccount))
		}
	}

	s.publishEvents(ctx, saved, deltas)

	s.LogInfo(ctx, "Ledger mutation committed",
		slog.String("entry_id", saved.EntryID),
		slog.Int64("sequence", saved.Sequence),
		slog.String("category", string(saved.Category)),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// profileFor recomputes the cumulative profile of one account by scanning its
// journal history.
func (s *ledgerService) profileFor(ctx context.Context, accountID string) (domain.CumulativeProfile, error) {
	entries, err := s.journalRepo.ScanEntries(ctx, domain.EntryFilter{Account: &accountID})
	if err != nil {
		return domain.CumulativeProfile{}, err
	}
	return cumulativeProfile(accountID, entries), nil
}

// publishEvents broadcasts committed facts. Failures inside the sink never
// affect the already-committed mutation.
func (s *ledgerService) publishEvents(ctx context.Context, entry *domain.Entry, deltas map[string]decimal.Decimal) {
	if s.sink == nil {
		return
	}
	at := entry.OccurredAt
	for accountID := range deltas {
		s.sink.Publish(ctx, events.Event{
			Type:      events.EventBalanceChanged,
			AccountID: accountID,
			EntryID:   entry.EntryID,
			Amount:    entry.Amount,
			Category:  entry.Category,
			At:        at,
		})
	}
	s.sink.Publish(ctx, events.Event{
		Type:     events.EventEntryAppended,
		EntryID:  entry.EntryID,
		Amount:   entry.Amount,
		Category: entry.Category,
		At:       at,
	})
}

// Credit adds funds to an account; the account is created implicitly on first
// credit. Requires PROCESS_PAYMENTS.
func (s *ledgerService) Credit(ctx context.Context, req dto.CreditRequest, principalID string) (*domain.Entry, error) {
	if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapProcessPayments); err != nil {
		return nil, err
	}
	if err := s.validateMutation(req.Amount, req.Category); err != nil {
		return nil, err
	}

	entry := s.newEntry(nil, &req.AccountID, req.Amount, req.Category, req.Description, principalID)
	deltas := map[string]decimal.Decimal{req.AccountID: req.Amount}
	return s.commit(ctx, entry, deltas, "")
}

// Debit removes funds from an account, never below zero. The principal must be
// the account holder or the administrator.
func (s *ledgerService) Debit(ctx context.Context, req dto.DebitRequest, principalID string) (*domain.Entry, error) {
	if err := s.authorizer.AuthorizeSelf(ctx, principalID, req.AccountID); err != nil {
		return nil, err
	}
	if err := s.validateMutation(req.Amount, req.Category); err != nil {
		return nil, err
	}

	balance, err := s.ledgerRepo.GetBalance(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientBalance, balance.String(), req.Amount.String())
	}

	entry := s.newEntry(&req.AccountID, nil, req.Amount, req.Category, req.Description, principalID)
	deltas := map[string]decimal.Decimal{req.AccountID: req.Amount.Neg()}
	return s.commit(ctx, entry, deltas, req.AccountID)
}

// Transfer moves funds between two accounts as one atomic unit: a failed debit
// check means the credit is never attempted and no partial state is visible.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest, principalID string) (*domain.Entry, error) {
	if err := s.authorizer.AuthorizeSelf(ctx, principalID, req.FromAccountID); err != nil {
		return nil, err
	}
	if err := s.validateMutation(req.Amount, domain.CategoryTransfer); err != nil {
		return nil, err
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: transfer origin and destination must differ", apperrors.ErrValidation)
	}

	balance, err := s.ledgerRepo.GetBalance(ctx, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientBalance, balance.String(), req.Amount.String())
	}

	entry := s.newEntry(&req.FromAccountID, &req.ToAccountID, req.Amount, domain.CategoryTransfer, req.Description, principalID)
	deltas := map[string]decimal.Decimal{
		req.FromAccountID: req.Amount.Neg(),
		req.ToAccountID:   req.Amount,
	}
	return s.commit(ctx, entry, deltas, req.FromAccountID)
}

// Mint creates external supply into an account. Administrator only. The entry
// has no origin: the value enters from outside the ledger.
func (s *ledgerService) Mint(ctx context.Context, req dto.MintRequest, principalID string) (*domain.Entry, error) {
	if err := s.authorizer.AuthorizeAdmin(ctx, principalID); err != nil {
		return nil, err
	}
	category := req.Category
	if category == "" {
		category = domain.CategoryRevenue
	}
	if err := s.validateMutation(req.Amount, category); err != nil {
		return nil, err
	}

	entry := s.newEntry(nil, &req.ToAccountID, req.Amount, category, req.Description, principalID)
	deltas := map[string]decimal.Decimal{req.ToAccountID: req.Amount}
	return s.commit(ctx, entry, deltas, "")
}

// Burn destroys supply out of an account. Administrator only. The entry has no
// destination: the value leaves the ledger.
func (s *ledgerService) Burn(ctx context.Context, req dto.BurnRequest, principalID string) (*domain.Entry, error) {
	if err := s.authorizer.AuthorizeAdmin(ctx, principalID); err != nil {
		return nil, err
	}
	category := req.Category
	if category == "" {
		category = domain.CategoryExpense
	}
	if err := s.validateMutation(req.Amount, category); err != nil {
		return nil, err
	}

	balance, err := s.ledgerRepo.GetBalance(ctx, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientBalance, balance.String(), req.Amount.String())
	}

	entry := s.newEntry(&req.FromAccountID, nil, req.Amount, category, req.Description, principalID)
	deltas := map[string]decimal.Decimal{req.FromAccountID: req.Amount.Neg()}
	return s.commit(ctx, entry, deltas, req.FromAccountID)
}

// GetBalance returns the balance of an account, zero for unknown accounts.
func (s *ledgerService) GetBalance(ctx context.Context, accountID string, principalID string) (decimal.Decimal, error) {
	if principalID != accountID {
		if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapViewReports); err != nil {
			return decimal.Zero, err
		}
	}
	return s.ledgerRepo.GetBalance(ctx, accountID)
}

// TotalSupply returns the sum of all balances.
func (s *ledgerService) TotalSupply(ctx context.Context, principalID string) (decimal.Decimal, error) {
	if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapViewReports); err != nil {
		return decimal.Zero, err
	}
	return s.ledgerRepo.TotalSupply(ctx)
}
