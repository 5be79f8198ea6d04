package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TxManager
	accountRepo AccountRepository
	events      EventGateway
	cache       BalanceCache
	idGen       IDGenerator
	eventIDGen  IDGenerator
	metrics     *metrics.Metrics
	logger      zerolog.Logger
	now         func() time.Time
}

// AccountConfig holds dependencies for AccountUseCase.
type AccountConfig struct {
	TxManager   TxManager
	AccountRepo AccountRepository
	Events      EventGateway
	Cache       BalanceCache // optional
	IDGen       IDGenerator
	EventIDGen  IDGenerator
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
	Clock       func() time.Time
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(cfg AccountConfig) *AccountUseCase {
	if cfg.EventIDGen == nil {
		cfg.EventIDGen = cfg.IDGen
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Now().UTC() }
	}

	return &AccountUseCase{
		txManager:   cfg.TxManager,
		accountRepo: cfg.AccountRepo,
		events:      cfg.Events,
		cache:       cfg.Cache,
		idGen:       cfg.IDGen,
		eventIDGen:  cfg.EventIDGen,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		now:         cfg.Clock,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID   string
	Currency string
}

// CreateAccount opens a zero-balance account for a user.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	userID, err := domain.ValidateID(input.UserID, "user_id")
	if err != nil {
		return nil, err
	}
	currency, err := domain.ValidateCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	account := domain.NewAccount(uc.idGen.Generate(), userID, currency, uc.now())

	uow, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer uow.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, uow, account); err != nil {
		return nil, err
	}

	uc.events.PublishAfterCommit(ctx, uow, domain.NewAccountCreatedEvent(uc.eventIDGen.Generate(), account))

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	uc.logger.Info().
		Str("account_id", domain.MaskID(account.ID)).
		Str("currency", account.Currency).
		Msg("account created")

	return account, nil
}

// GetBalance returns the current state of an account.
func (uc *AccountUseCase) GetBalance(ctx context.Context, accountID string) (*domain.Account, error) {
	id, err := domain.ValidateID(accountID, "account_id")
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		switch {
		case err == nil:
			uc.cacheResult("hit")
			return cached, nil
		case errors.Is(err, ErrCacheMiss):
			uc.cacheResult("miss")
		default:
			uc.cacheResult("error")
			uc.logger.Warn().Err(err).Str("account_id", domain.MaskID(id)).Msg("balance cache read failed")
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, account); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", domain.MaskID(id)).Msg("balance cache write failed")
		}
	}

	return account, nil
}

func (uc *AccountUseCase) cacheResult(result string) {
	if uc.metrics != nil {
		uc.metrics.BalanceCacheOps.WithLabelValues(result).Inc()
	}
}
