package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/metrics"
)

var tracer = otel.Tracer("github.com/iho/ledgercore/internal/usecase")

// PostingUseCase applies transactions to account balances.
type PostingUseCase struct {
	txManager       TxManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	events          EventGateway
	cache           BalanceCache
	retrier         Retrier
	idGen           IDGenerator
	eventIDGen      IDGenerator
	metrics         *metrics.Metrics
	logger          zerolog.Logger
	timeout         time.Duration
	now             func() time.Time
}

// PostingConfig holds dependencies for PostingUseCase.
type PostingConfig struct {
	TxManager       TxManager
	AccountRepo     AccountRepository
	TransactionRepo TransactionRepository
	EntryRepo       EntryRepository
	Events          EventGateway
	Cache           BalanceCache // optional
	Retrier         Retrier      // optional, conflicts are surfaced when nil
	IDGen           IDGenerator
	EventIDGen      IDGenerator // defaults to IDGen
	Metrics         *metrics.Metrics
	Logger          zerolog.Logger
	Timeout         time.Duration
	Clock           func() time.Time
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(cfg PostingConfig) *PostingUseCase {
	if cfg.EventIDGen == nil {
		cfg.EventIDGen = cfg.IDGen
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTransactionTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Now().UTC() }
	}

	return &PostingUseCase{
		txManager:       cfg.TxManager,
		accountRepo:     cfg.AccountRepo,
		transactionRepo: cfg.TransactionRepo,
		entryRepo:       cfg.EntryRepo,
		events:          cfg.Events,
		cache:           cfg.Cache,
		retrier:         cfg.Retrier,
		idGen:           cfg.IDGen,
		eventIDGen:      cfg.EventIDGen,
		metrics:         cfg.Metrics,
		logger:          cfg.Logger,
		timeout:         cfg.Timeout,
		now:             cfg.Clock,
	}
}

// PostTransactionInput is a raw posting request as received from a caller.
type PostTransactionInput struct {
	ReferenceID   string
	Type          string
	Amount        string
	Currency      string
	FromAccountID string
	ToAccountID   string
	Metadata      string
}

// PostTransactionResult is the outcome of a successful posting.
type PostTransactionResult struct {
	TransactionID string
	ReferenceID   string
	Status        domain.TransactionStatus
	Message       string
}

type postingRequest struct {
	referenceID   string
	txType        domain.TransactionType
	amount        decimal.Decimal
	currency      string
	fromAccountID string
	toAccountID   string
	metadata      string
}

// PostTransaction validates input and applies it inside one serializable unit of work.
func (uc *PostingUseCase) PostTransaction(ctx context.Context, input PostTransactionInput) (*PostTransactionResult, error) {
	start := time.Now()

	ctx, span := tracer.Start(ctx, "ledger.PostTransaction")
	defer span.End()

	if uc.metrics != nil {
		uc.metrics.TransactionsTotal.Inc()
		defer func() { uc.metrics.TransactionDuration.Observe(time.Since(start).Seconds()) }()
	}

	req, err := validatePosting(input)
	if err != nil {
		uc.fail(ctx, span, req.referenceID, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("ledger.reference_id", req.referenceID),
		attribute.String("ledger.type", string(req.txType)),
	)

	var posted *domain.Transaction
	attempt := 0
	operation := func() error {
		attempt++
		if attempt > 1 && uc.metrics != nil {
			uc.metrics.TransactionRetries.Inc()
		}

		tx, err := uc.post(ctx, req)
		if err != nil {
			return err
		}
		posted = tx
		return nil
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		uc.fail(ctx, span, req.referenceID, err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsSucceeded.Inc()
	}

	uc.logger.Info().
		Str("transaction_id", domain.MaskID(posted.ID)).
		Str("reference_id", domain.MaskID(posted.ReferenceID)).
		Str("type", string(posted.Type)).
		Str("amount", "[REDACTED]").
		Int("attempts", attempt).
		Msg("transaction posted")

	return &PostTransactionResult{
		TransactionID: posted.ID,
		ReferenceID:   posted.ReferenceID,
		Status:        posted.Status,
		Message:       PostedMessage,
	}, nil
}

// validatePosting normalizes every field. The returned request carries the reference id
// as soon as it is known to be valid, even when a later field fails.
func validatePosting(input PostTransactionInput) (postingRequest, error) {
	var req postingRequest

	referenceID, err := domain.ValidateReferenceID(input.ReferenceID)
	if err != nil {
		return req, err
	}
	req.referenceID = referenceID

	if req.amount, err = domain.ValidateAmount(input.Amount); err != nil {
		return req, err
	}
	if req.currency, err = domain.ValidateCurrency(input.Currency); err != nil {
		return req, err
	}
	req.metadata = domain.SanitizeMetadata(input.Metadata)

	if req.txType, err = domain.ParseTransactionType(input.Type); err != nil {
		return req, err
	}

	if input.FromAccountID != "" {
		if req.fromAccountID, err = domain.ValidateID(input.FromAccountID, "from_account_id"); err != nil {
			return req, err
		}
	}
	if input.ToAccountID != "" {
		if req.toAccountID, err = domain.ValidateID(input.ToAccountID, "to_account_id"); err != nil {
			return req, err
		}
	}

	return req, nil
}

// post runs a single attempt of the posting algorithm.
func (uc *PostingUseCase) post(ctx context.Context, req postingRequest) (*domain.Transaction, error) {
	txCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	uow, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer uow.Rollback(txCtx)

	existing, err := uc.transactionRepo.GetByReferenceID(txCtx, uow, req.referenceID)
	if err != nil && !errors.Is(err, domain.ErrTransactionNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateTransaction
	}

	from, err := uc.loadParticipant(txCtx, uow, req.fromAccountID, req.currency, domain.ErrSourceAccountNotFound)
	if err != nil {
		return nil, err
	}
	to, err := uc.loadParticipant(txCtx, uow, req.toAccountID, req.currency, domain.ErrDestinationAccountNotFound)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	tx := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		ReferenceID: req.referenceID,
		Type:        req.txType,
		Status:      domain.TransactionStatusPending,
		Amount:      req.amount,
		Currency:    req.currency,
		Metadata:    req.metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.ValidateAccounts(from, to); err != nil {
		return nil, err
	}
	if from != nil {
		tx.FromAccountID = &from.ID
	}
	if to != nil {
		tx.ToAccountID = &to.ID
	}

	if err := uc.transactionRepo.Create(txCtx, uow, tx); err != nil {
		return nil, err
	}

	touched := make([]domain.Account, 0, 2)

	if from != nil {
		m, err := from.Debit(req.amount, now)
		if err != nil {
			return nil, err
		}
		if err := uc.accountRepo.UpdateBalance(txCtx, uow, m); err != nil {
			return nil, err
		}
		from.Apply(m)

		if err := uc.entryRepo.Create(txCtx, uow, domain.NewDebitEntry(uc.idGen.Generate(), tx.ID, m, req.amount)); err != nil {
			return nil, err
		}
		touched = append(touched, *from)
	}

	if to != nil {
		m := to.Credit(req.amount, now)
		if err := uc.accountRepo.UpdateBalance(txCtx, uow, m); err != nil {
			return nil, err
		}
		to.Apply(m)

		if err := uc.entryRepo.Create(txCtx, uow, domain.NewCreditEntry(uc.idGen.Generate(), tx.ID, m, req.amount)); err != nil {
			return nil, err
		}
		touched = append(touched, *to)
	}

	if err := tx.MarkPosted(now); err != nil {
		return nil, err
	}
	if err := uc.transactionRepo.UpdateStatus(txCtx, uow, tx.ID, tx.Status, tx.UpdatedAt); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uow.AfterCommit(func(ctx context.Context) {
			uc.refreshCache(ctx, touched)
		})
	}
	uc.events.PublishAfterCommit(txCtx, uow, domain.NewTransactionPostedEvent(uc.eventIDGen.Generate(), tx))

	if err := uow.Commit(txCtx); err != nil {
		return nil, err
	}

	return tx, nil
}

// refreshCache writes the committed snapshots so readers holding an older version
// cannot repopulate the cache with it. Accounts whose write fails are evicted.
func (uc *PostingUseCase) refreshCache(ctx context.Context, accounts []domain.Account) {
	var stale []string
	for i := range accounts {
		if err := uc.cache.Set(ctx, &accounts[i]); err != nil {
			stale = append(stale, accounts[i].ID)
		}
	}
	if len(stale) == 0 {
		return
	}
	if err := uc.cache.Invalidate(ctx, stale...); err != nil {
		uc.logger.Warn().Err(err).Int("accounts", len(stale)).Msg("failed to refresh balance cache")
	}
}

// loadParticipant resolves an optional account and checks its currency.
func (uc *PostingUseCase) loadParticipant(ctx context.Context, uow UnitOfWork, id, currency string, notFound error) (*domain.Account, error) {
	if id == "" {
		return nil, nil
	}

	account, err := uc.accountRepo.GetByIDTx(ctx, uow, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, notFound
		}
		return nil, err
	}

	if account.Currency != currency {
		return nil, fmt.Errorf("%w: account %s holds %s", domain.ErrCurrencyMismatch, domain.MaskID(account.ID), account.Currency)
	}

	return account, nil
}

// fail records a rejected posting and emits transaction.failed when the failure has a
// caller-visible meaning.
func (uc *PostingUseCase) fail(ctx context.Context, span trace.Span, referenceID string, err error) {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, errorLabel(err))

	if uc.metrics != nil {
		uc.metrics.TransactionsFailed.WithLabelValues(errorLabel(err)).Inc()
	}

	reason, publish := domain.FailureReason(err)

	switch {
	case errors.Is(err, domain.ErrInvalidInput), domain.IsBusinessRejection(err), domain.IsRetryable(err):
		uc.logger.Warn().
			Str("reference_id", domain.MaskID(referenceID)).
			Str("reason", errorLabel(err)).
			Msg("transaction rejected")
	default:
		uc.logger.Error().
			Err(err).
			Str("reference_id", domain.MaskID(referenceID)).
			Msg("transaction failed")
	}

	if !publish || referenceID == "" {
		return
	}

	uc.events.Publish(ctx, domain.NewTransactionFailedEvent(uc.eventIDGen.Generate(), referenceID, reason, uc.now()))
}

// errorLabel classifies err for metrics and logs.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return "duplicate"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "concurrency_conflict"
	default:
		return "internal"
	}
}
