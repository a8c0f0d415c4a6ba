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

// OrderRepository implements persistence.OrderRepository using GORM
type OrderRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB, logger coreport.Logger) *OrderRepository {
	return &OrderRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts an order entity to its database model with items
func (r *OrderRepository) entityToModel(order *entity.Order) *model.Order {
	orderModel := &model.Order{
		ID:              order.ID,
		Code:            order.Code,
		UserID:          order.UserID,
		AddressLine1:    order.ShippingAddress.Line1,
		AddressLine2:    order.ShippingAddress.Line2,
		City:            order.ShippingAddress.City,
		State:           order.ShippingAddress.State,
		PostalCode:      order.ShippingAddress.PostalCode,
		Country:         order.ShippingAddress.Country,
		PaymentMethod:   string(order.Payment.Method),
		PaymentTxID:     order.Payment.ExternalTxID,
		PaymentAmount:   order.Payment.Amount,
		PaymentCurrency: order.Payment.Currency,
		PaymentVerified: order.Payment.Verified,
		Subtotal:        order.Subtotal,
		Shipping:        order.Shipping,
		Tax:             order.Tax,
		Discount:        order.Discount,
		Total:           order.Total,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	for _, item := range order.Items {
		orderModel.Items = append(orderModel.Items, model.OrderItem{
			OrderID:    order.ID,
			ProductRef: item.ProductRef,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}
	return orderModel
}

// modelToEntity converts an order model with items to an entity
func (r *OrderRepository) modelToEntity(m *model.Order) *entity.Order {
	order := &entity.Order{
		ID:     m.ID,
		Code:   m.Code,
		UserID: m.UserID,
		ShippingAddress: entity.ShippingAddress{
			Line1:      m.AddressLine1,
			Line2:      m.AddressLine2,
			City:       m.City,
			State:      m.State,
			PostalCode: m.PostalCode,
			Country:    m.Country,
		},
		Payment: entity.Payment{
			Method:       entity.PaymentMethod(m.PaymentMethod),
			ExternalTxID: m.PaymentTxID,
			Amount:       m.PaymentAmount,
			Currency:     m.PaymentCurrency,
			Verified:     m.PaymentVerified,
		},
		Subtotal:  m.Subtotal,
		Shipping:  m.Shipping,
		Tax:       m.Tax,
		Discount:  m.Discount,
		Total:     m.Total,
		Status:    entity.OrderStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, item := range m.Items {
		order.Items = append(order.Items, entity.LineItem{
			ProductRef: item.ProductRef,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}
	return order
}

// Create saves a new order with its line items and payment descriptor
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderModel := r.entityToModel(order)

	result := r.db.WithContext(ctx).Create(orderModel)
	if result.Error != nil {
		r.logger.Error("Failed to create order", map[string]any{
			"order_code": order.Code,
			"user_id":    order.UserID,
			"error":      result.Error.Error(),
		})
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrConstraintViolation
		}
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	r.logger.Info("Order created", map[string]any{
		"order_code": order.Code,
		"user_id":    order.UserID,
		"status":     order.Status,
		"total":      order.Total.String(),
	})
	return nil
}

// GetByCode retrieves an order by its human-readable code
func (r *OrderRepository) GetByCode(ctx context.Context, code string) (*entity.Order, error) {
	var orderModel model.Order
	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("code = ?", code).
		First(&orderModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return r.modelToEntity(&orderModel), nil
}

// ListByUser returns a user's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Order, error) {
	if limit <= 0 {
		limit = 50
	}

	var models []model.Order
	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	orders := make([]*entity.Order, 0, len(models))
	for i := range models {
		orders = append(orders, r.modelToEntity(&models[i]))
	}
	return orders, nil
}

// UpdateStatus persists an order's new status and appends the transition
// event to the audit trail in one statement pair. The update is a
// compare-and-swap on the status the transition started from, so two callers
// racing through the same transition cannot both win.
func (r *OrderRepository) UpdateStatus(ctx context.Context, order *entity.Order, event *entity.OrderEvent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", order.ID, string(event.FromStatus)).
			Updates(map[string]interface{}{
				"status":     string(order.Status),
				"updated_at": order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewInvalidTransitionError(order.Code, string(event.FromStatus), string(order.Status))
		}

		eventModel := model.OrderEvent{
			OrderID:    event.OrderID,
			FromStatus: string(event.FromStatus),
			ToStatus:   string(event.ToStatus),
			CreatedAt:  event.CreatedAt,
		}
		return tx.Create(&eventModel).Error
	})

	if err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			return err
		}
		r.logger.Error("Failed to update order status", map[string]any{
			"order_code": order.Code,
			"to_status":  order.Status,
			"error":      err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	r.logger.Info("Order status updated", map[string]any{
		"order_code": order.Code,
		"from":       event.FromStatus,
		"to":         event.ToStatus,
	})
	return nil
}
