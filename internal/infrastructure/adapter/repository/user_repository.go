package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	metrics         *metrics.Metrics
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger, m *metrics.Metrics) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		metrics:         m,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) *entity.User {
	user := &entity.User{
		ID:            userModel.ID,
		WalletAddress: stringValue(userModel.WalletAddress),
		ChatID:        stringValue(userModel.ChatID),
		Email:         stringValue(userModel.Email),
		DisplayName:   userModel.DisplayName,
		Verified:      userModel.Verified,
		Channel:       entity.Channel(userModel.Channel),
		CreatedAt:     userModel.CreatedAt,
		UpdatedAt:     userModel.UpdatedAt,
	}
	user.SetBalance(userModel.Balance, r.timeProvider)
	user.UpdatedAt = userModel.UpdatedAt
	return user
}

// entityToModel converts a user entity to its database model
func (r *UserRepository) entityToModel(user *entity.User) *model.User {
	return &model.User{
		ID:            user.ID,
		WalletAddress: stringPtr(user.WalletAddress),
		ChatID:        stringPtr(user.ChatID),
		Email:         stringPtr(user.Email),
		DisplayName:   user.DisplayName,
		Balance:       user.Balance(),
		Verified:      user.Verified,
		Channel:       string(user.Channel),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by internal id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByWalletAddress retrieves a user by wallet address
func (r *UserRepository) GetByWalletAddress(ctx context.Context, address string) (*entity.User, error) {
	return r.getByIdentifier(ctx, "wallet_address = ?", address)
}

// GetByChatID retrieves a user by chat handle
func (r *UserRepository) GetByChatID(ctx context.Context, chatID string) (*entity.User, error) {
	return r.getByIdentifier(ctx, "chat_id = ?", chatID)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getByIdentifier(ctx, "email = ?", email)
}

func (r *UserRepository) getByIdentifier(ctx context.Context, query, value string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where(query, value).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.handleDatabaseError("looking up user by identifier", result.Error, "")
	}
	return r.modelToEntity(&userModel), nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Creating new user", map[string]any{
		"user_id": user.ID,
		"channel": user.Channel,
	})

	userModel := r.entityToModel(user)
	result := r.db.WithContext(ctx).Create(userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.ID)
	}

	r.logger.Info("User created successfully", map[string]any{
		"user_id":      user.ID,
		"display_name": user.DisplayName,
		"channel":      user.Channel,
	})
	return nil
}

// UpdateIdentifiers persists backfilled identifiers and profile fields
func (r *UserRepository) UpdateIdentifiers(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"wallet_address": stringPtr(user.WalletAddress),
			"chat_id":        stringPtr(user.ChatID),
			"email":          stringPtr(user.Email),
			"display_name":   user.DisplayName,
			"verified":       user.Verified,
			"updated_at":     user.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating user identifiers", result.Error, user.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}

	r.logger.Info("User identifiers updated", map[string]any{
		"user_id": user.ID,
	})
	return nil
}

// AdjustBalance applies a signed balance change atomically and journals it.
// The user row is locked with FOR UPDATE so two concurrent debits can never
// jointly overdraw the account, and the journal row is written under the
// same lock. Deadlocks and lock timeouts rerun the whole transaction.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID string, delta decimal.Decimal, reason string) (decimal.Decimal, error) {
	var newBalance decimal.Decimal

	adjust := func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var userModel model.User
			result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&userModel, "id = ?", userID)
			if result.Error != nil {
				if errors.Is(result.Error, gorm.ErrRecordNotFound) {
					return errs.ErrUserNotFound
				}
				return result.Error
			}

			candidate := userModel.Balance.Add(delta)
			if candidate.IsNegative() {
				r.logger.Warn("Insufficient balance for adjustment", map[string]any{
					"user_id": userID,
					"balance": userModel.Balance.String(),
					"delta":   delta.String(),
					"reason":  reason,
				})
				return errs.NewInsufficientBalanceError(userID, delta.Neg().String(), userModel.Balance.String())
			}

			now := r.timeProvider.Now()
			result = tx.Model(&model.User{}).
				Where("id = ?", userID).
				Updates(map[string]interface{}{
					"balance":    candidate,
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}

			entry := model.BalanceEntry{
				UserID:       userID,
				Delta:        delta,
				BalanceAfter: candidate,
				Reason:       reason,
				CreatedAt:    now,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}

			newBalance = candidate
			return nil
		})
	}

	err := RetryOnTransientError(ctx, DefaultRetryConfig(), adjust, r.logger)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) || errors.Is(err, errs.ErrInsufficientBalance) {
			return decimal.Zero, err
		}
		r.logger.Error("Database error during balance adjustment", map[string]any{
			"user_id": userID,
			"reason":  reason,
			"error":   err.Error(),
		})
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	if r.metrics != nil {
		direction := "credit"
		if delta.IsNegative() {
			direction = "debit"
		}
		r.metrics.BalanceAdjustments.WithLabelValues(direction).Inc()
	}

	r.logger.Info("Balance adjusted", map[string]any{
		"user_id":     userID,
		"delta":       delta.String(),
		"new_balance": newBalance.String(),
		"reason":      reason,
	})
	return newBalance, nil
}
