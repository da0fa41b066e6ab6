package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

const unknownBuyer = "未知買家"

type CartUseCase struct {
	cartRepo       repository.CartRepository
	orderRepo      repository.OrderRepository
	productUseCase *ProductUseCase
	userRepo       repository.UserRepository
	now            func() time.Time
}

func NewCartUseCase(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	productUseCase *ProductUseCase,
	userRepo repository.UserRepository,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:       cartRepo,
		orderRepo:      orderRepo,
		productUseCase: productUseCase,
		userRepo:       userRepo,
		now:            time.Now,
	}
}

type CartView struct {
	Items []entity.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func CartTotal(items []entity.CartItem) float64 {
	return lo.SumBy(items, func(i entity.CartItem) float64 { return i.Subtotal() })
}

func newCartView(cart *entity.Cart) *CartView {
	return &CartView{Items: cart.Items, Total: CartTotal(cart.Items)}
}

func (uc *CartUseCase) GetCart(ctx context.Context, buyerID string) (*CartView, error) {
	cart, err := uc.cartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return newCartView(cart), nil
}

// AddToCart bumps an existing line by one, or appends a new line with
// quantity (at least 1) and a snapshot of the product and seller.
func (uc *CartUseCase) AddToCart(ctx context.Context, buyerID, productID string, quantity int) (*CartView, error) {
	product, err := uc.productUseCase.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.BadRequest("商品資訊不完整，無法加入購物車", err)
		}
		return nil, err
	}
	if product.ID == "" || product.Name == "" || product.Price == 0 {
		return nil, errors.BadRequest("商品資訊不完整，無法加入購物車", nil)
	}
	if product.OutOfStock() {
		return nil, errors.BadRequest("缺貨", nil)
	}

	cart, err := uc.cartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	if _, idx, found := lo.FindIndexOf(cart.Items, func(i entity.CartItem) bool { return i.ID == productID }); found {
		cart.Items[idx].Quantity++
	} else {
		if quantity <= 0 {
			quantity = 1
		}
		cart.Items = append(cart.Items, entity.CartItem{
			ID:         product.ID,
			Name:       product.Name,
			Price:      product.Price,
			Quantity:   quantity,
			SellerID:   product.SellerID,
			SellerName: product.SellerName,
			Weight:     product.Weight,
			Type:       product.MaterialType,
			PhotoURL:   product.PhotoURL,
		})
	}

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return newCartView(cart), nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, buyerID, productID string, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return uc.RemoveFromCart(ctx, buyerID, productID)
	}

	cart, err := uc.cartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	_, idx, found := lo.FindIndexOf(cart.Items, func(i entity.CartItem) bool { return i.ID == productID })
	if !found {
		return nil, errors.NotFound("Cart item", nil)
	}
	cart.Items[idx].Quantity = quantity

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return newCartView(cart), nil
}

func (uc *CartUseCase) RemoveFromCart(ctx context.Context, buyerID, productID string) (*CartView, error) {
	cart, err := uc.cartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	cart.Items = lo.Reject(cart.Items, func(i entity.CartItem, _ int) bool { return i.ID == productID })
	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return newCartView(cart), nil
}

func (uc *CartUseCase) ClearCart(ctx context.Context, buyerID string) error {
	return uc.cartRepo.Clear(ctx, buyerID)
}

// OrderNumber formats ORD-<unix millis>-<last four characters of sellerID>.
func OrderNumber(at time.Time, sellerID string) string {
	suffix := sellerID
	if r := []rune(sellerID); len(r) > 4 {
		suffix = string(r[len(r)-4:])
	}
	return fmt.Sprintf("ORD-%d-%s", at.UnixMilli(), suffix)
}

// groupBySeller builds one pending order per seller, in first-seen order.
// Lines without seller information are dropped.
func groupBySeller(items []entity.CartItem, buyerID, buyerName string) []*entity.Order {
	valid := lo.Filter(items, func(i entity.CartItem, _ int) bool {
		return strings.TrimSpace(i.SellerID) != "" && strings.TrimSpace(i.SellerName) != ""
	})
	groups := lo.GroupBy(valid, func(i entity.CartItem) string { return i.SellerID })
	sellers := lo.Uniq(lo.Map(valid, func(i entity.CartItem, _ int) string { return i.SellerID }))

	return lo.Map(sellers, func(sellerID string, _ int) *entity.Order {
		lines := groups[sellerID]
		return &entity.Order{
			BuyerID:    buyerID,
			BuyerName:  buyerName,
			SellerID:   sellerID,
			SellerName: lines[0].SellerName,
			Items: lo.Map(lines, func(i entity.CartItem, _ int) entity.OrderItem {
				return entity.OrderItem{ProductID: i.ID, Name: i.Name, Price: i.Price, Quantity: i.Quantity}
			}),
			TotalAmount: CartTotal(lines),
			Status:      entity.OrderStatusPending,
		}
	})
}

// Checkout writes one order per seller concurrently and then empties the cart.
// Orders that were written before a failure are kept.
func (uc *CartUseCase) Checkout(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	cart, err := uc.cartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, errors.BadRequest("購物車是空的，無法確認訂單", nil)
	}

	buyerName := unknownBuyer
	if buyer, err := uc.userRepo.GetByID(ctx, entity.RoleBuyer, buyerID); err == nil {
		buyerName = buyer.Username
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	orders := groupBySeller(cart.Items, buyerID, buyerName)
	if len(orders) == 0 {
		return nil, errors.BadRequest("購物車中的商品資訊不完整，無法確認訂單", nil)
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	created := make([]*entity.Order, 0, len(orders))
	for _, order := range orders {
		g.Go(func() error {
			order.CreatedAt = uc.now()
			if err := uc.orderRepo.Create(ctx, order); err != nil {
				return err
			}

			number := OrderNumber(uc.now(), order.SellerID)
			if err := uc.orderRepo.SetOrderNumber(ctx, order.ID, number); err != nil {
				return err
			}
			order.OrderNumber = number

			mu.Lock()
			created = append(created, order)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("CartUseCase.Checkout Error: buyer=%s created=%d of %d: %v", buyerID, len(created), len(orders), err)
		return nil, errors.Internal("訂單確認失敗，請重試", err)
	}

	if err := uc.cartRepo.Clear(ctx, buyerID); err != nil {
		return nil, err
	}

	logger.Info("Checkout for buyer %s created %d orders", buyerID, len(orders))
	return orders, nil
}
