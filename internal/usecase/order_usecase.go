package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

const recentOrdersLimit = 5

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

func NewOrderUseCase(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

func sortOrdersNewestFirst(orders []*entity.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func (uc *OrderUseCase) ListBuyerOrders(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	orders, err := uc.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (uc *OrderUseCase) ListSellerOrders(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	orders, err := uc.orderRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

// ConfirmOrder moves a pending order of sellerID to confirmed.
func (uc *OrderUseCase) ConfirmOrder(ctx context.Context, sellerID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != sellerID {
		return nil, errors.Forbidden("You can only confirm your own orders", nil)
	}
	if order.Status != entity.OrderStatusPending {
		return nil, errors.Conflict("Only pending orders can be confirmed", nil)
	}

	at := uc.now()
	if err := uc.orderRepo.Confirm(ctx, orderID, at); err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatusConfirmed
	order.ConfirmedAt = &at
	logger.Info("Order %s confirmed by seller %s", orderID, sellerID)
	return order, nil
}

func (uc *OrderUseCase) SellerDashboard(ctx context.Context, sellerID string) (*entity.SellerDashboard, error) {
	products, err := uc.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orderRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	sortOrdersNewestFirst(orders)
	countStatus := func(s entity.OrderStatus) int {
		return lo.CountBy(orders, func(o *entity.Order) bool { return o.Status == s })
	}

	return &entity.SellerDashboard{
		TotalProducts:   len(products),
		TotalOrders:     len(orders),
		TotalRevenue:    lo.SumBy(orders, func(o *entity.Order) float64 { return o.TotalAmount }),
		PendingOrders:   countStatus(entity.OrderStatusPending),
		ConfirmedOrders: countStatus(entity.OrderStatusConfirmed),
		RecentOrders:    lo.Slice(orders, 0, recentOrdersLimit),
	}, nil
}
