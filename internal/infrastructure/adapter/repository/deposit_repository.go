package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/model"
)

// DepositRepository implements persistence.DepositRepository using GORM
type DepositRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewDepositRepository creates a new DepositRepository instance
func NewDepositRepository(db *gorm.DB, logger coreport.Logger) *DepositRepository {
	return &DepositRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a deposit model to an entity
func (r *DepositRepository) modelToEntity(m *model.Deposit) *entity.Deposit {
	deposit := &entity.Deposit{
		ID:            m.ID,
		UserID:        stringValue(m.UserID),
		ExternalTxID:  m.ExternalTxID,
		Amount:        m.Amount,
		TokenID:       m.TokenID,
		SenderAddress: m.SenderAddress,
		ConfirmedAt:   m.ConfirmedAt,
		Status:        entity.DepositStatus(m.Status),
		CreatedAt:     m.CreatedAt,
	}
	if m.ConsensusAt != nil {
		deposit.ConsensusAt = *m.ConsensusAt
	}
	return deposit
}

// Reserve atomically claims the canonical external transaction id. The
// insert either succeeds or trips the unique index; there is no read first,
// so two racing verifications cannot both get through.
func (r *DepositRepository) Reserve(ctx context.Context, externalTxID string) (*entity.Deposit, error) {
	reservation := entity.NewReservation(externalTxID, r.db.NowFunc())

	depositModel := model.Deposit{
		ID:           reservation.ID,
		ExternalTxID: reservation.ExternalTxID,
		Status:       string(reservation.Status),
		CreatedAt:    reservation.CreatedAt,
	}

	err := RetryOnTransientError(ctx, DefaultRetryConfig(), func() error {
		return r.db.WithContext(ctx).Create(&depositModel).Error
	}, r.logger)
	if err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Info("Deposit already reserved or confirmed", map[string]any{
				"external_tx_id": externalTxID,
			})
			return nil, errs.ErrDuplicateDeposit
		}
		r.logger.Error("Failed to reserve deposit", map[string]any{
			"external_tx_id": externalTxID,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return reservation, nil
}

// Release deletes a reservation so the same external id can be retried later.
// Confirmed deposits are immutable and never deleted.
func (r *DepositRepository) Release(ctx context.Context, depositID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", depositID, string(entity.DepositReserved)).
		Delete(&model.Deposit{})

	if result.Error != nil {
		r.logger.Error("Failed to release deposit reservation", map[string]any{
			"deposit_id": depositID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("No reservation found to release", map[string]any{
			"deposit_id": depositID,
		})
	}
	return nil
}

// Confirm persists the verified transfer details onto the reserved row
func (r *DepositRepository) Confirm(ctx context.Context, deposit *entity.Deposit) error {
	result := r.db.WithContext(ctx).Model(&model.Deposit{}).
		Where("id = ? AND status = ?", deposit.ID, string(entity.DepositReserved)).
		Updates(map[string]interface{}{
			"user_id":        stringPtr(deposit.UserID),
			"amount":         deposit.Amount,
			"token_id":       deposit.TokenID,
			"sender_address": deposit.SenderAddress,
			"consensus_at":   deposit.ConsensusAt,
			"confirmed_at":   deposit.ConfirmedAt,
			"status":         string(entity.DepositConfirmed),
		})

	if result.Error != nil {
		r.logger.Error("Failed to confirm deposit", map[string]any{
			"deposit_id":     deposit.ID,
			"external_tx_id": deposit.ExternalTxID,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrDepositNotFound
	}

	r.logger.Info("Deposit confirmed", map[string]any{
		"deposit_id":     deposit.ID,
		"external_tx_id": deposit.ExternalTxID,
		"user_id":        deposit.UserID,
		"amount":         deposit.Amount.String(),
	})
	return nil
}

// GetByExternalID retrieves a deposit by canonical external transaction id
func (r *DepositRepository) GetByExternalID(ctx context.Context, externalTxID string) (*entity.Deposit, error) {
	var depositModel model.Deposit
	result := r.db.WithContext(ctx).Where("external_tx_id = ?", externalTxID).First(&depositModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrDepositNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return r.modelToEntity(&depositModel), nil
}

// ListByUser returns a user's confirmed deposits, newest first
func (r *DepositRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Deposit, error) {
	if limit <= 0 {
		limit = 50
	}

	var models []model.Deposit
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.DepositConfirmed)).
		Order("confirmed_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	deposits := make([]*entity.Deposit, 0, len(models))
	for i := range models {
		deposits = append(deposits, r.modelToEntity(&models[i]))
	}
	return deposits, nil
}
