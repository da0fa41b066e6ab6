package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

const unknownSeller = "未知賣家"

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewProductUseCase(productRepo repository.ProductRepository, userRepo repository.UserRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type ProductInput struct {
	Name         string
	Price        *float64
	Quantity     *float64
	Weight       string
	MaterialType string
	Location     string
	PhotoURL     string
}

func (in ProductInput) validate() (int, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price == nil || in.Quantity == nil {
		return 0, errors.BadRequest("請填寫所有欄位", nil)
	}
	if math.IsNaN(*in.Price) || *in.Price <= 0 {
		return 0, errors.BadRequest("價格必須是大於0的數字", nil)
	}
	q := *in.Quantity
	if math.IsNaN(q) || q < 0 || q != math.Trunc(q) || q > math.MaxInt32 {
		return 0, errors.BadRequest("庫存必須是大於等於0的整數", nil)
	}
	return int(q), nil
}

func (in ProductInput) apply(p *entity.Product, quantity int) {
	p.Name = strings.TrimSpace(in.Name)
	p.Price = *in.Price
	p.Quantity = &quantity
	p.Weight = strings.TrimSpace(in.Weight)
	p.MaterialType = strings.TrimSpace(in.MaterialType)
	p.Location = strings.TrimSpace(in.Location)
	p.PhotoURL = strings.TrimSpace(in.PhotoURL)
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input ProductInput) (*entity.Product, error) {
	quantity, err := input.validate()
	if err != nil {
		return nil, err
	}

	product := &entity.Product{SellerID: sellerID}
	input.apply(product, quantity)

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Product %s created by seller %s", product.ID, sellerID)
	return product, nil
}

func (uc *ProductUseCase) ownedProduct(ctx context.Context, sellerID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, errors.Forbidden("You can only manage your own products", nil)
	}
	return product, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, sellerID, productID string, input ProductInput) (*entity.Product, error) {
	quantity, err := input.validate()
	if err != nil {
		return nil, err
	}

	product, err := uc.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	input.apply(product, quantity)
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, sellerID, productID string) error {
	if _, err := uc.ownedProduct(ctx, sellerID, productID); err != nil {
		return err
	}
	return uc.productRepo.Delete(ctx, productID)
}

func (uc *ProductUseCase) ListMyProducts(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	products, err := uc.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(products)
	return products, nil
}

type sellerDirectory struct {
	sellers map[string]*entity.User
	buyers  map[string]*entity.User
}

func (uc *ProductUseCase) loadDirectory(ctx context.Context) (*sellerDirectory, error) {
	sellers, err := uc.userRepo.ListByRole(ctx, entity.RoleSeller)
	if err != nil {
		return nil, err
	}
	buyers, err := uc.userRepo.ListByRole(ctx, entity.RoleBuyer)
	if err != nil {
		return nil, err
	}

	byID := func(u *entity.User) string { return u.ID }
	return &sellerDirectory{
		sellers: lo.KeyBy(sellers, byID),
		buyers:  lo.KeyBy(buyers, byID),
	}, nil
}

// sellerName labels a product's owner for the buyer catalog. Products that
// were saved under a buyer id are flagged instead of hidden.
func (d *sellerDirectory) sellerName(sellerID string) string {
	if s, ok := d.sellers[sellerID]; ok {
		if s.Username == "" {
			return unknownSeller
		}
		return s.Username
	}
	if b, ok := d.buyers[sellerID]; ok {
		return fmt.Sprintf("[錯誤] %s (這是買家ID)", b.Username)
	}
	return unknownSeller
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, filter ProductFilter) ([]*entity.Product, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	dir, err := uc.loadDirectory(ctx)
	if err != nil {
		logger.Warn("ProductUseCase.ListProducts: seller lookup failed, using fallback names: %v", err)
		dir = &sellerDirectory{}
	}

	result := lo.Filter(products, func(p *entity.Product, _ int) bool {
		return filter.Matches(p)
	})
	for _, p := range result {
		p.SellerName = dir.sellerName(p.SellerID)
	}
	sortNewestFirst(result)
	return result, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.SellerName = unknownSeller
	if seller, err := uc.userRepo.GetByID(ctx, entity.RoleSeller, product.SellerID); err == nil && seller.Username != "" {
		product.SellerName = seller.Username
	}
	return product, nil
}

// FindOrphanedProducts reports products whose sellerId is not a registered
// seller.
func (uc *ProductUseCase) FindOrphanedProducts(ctx context.Context) ([]*entity.OrphanProduct, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := uc.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	var orphans []*entity.OrphanProduct
	for _, p := range products {
		if _, ok := dir.sellers[p.SellerID]; ok {
			continue
		}
		o := &entity.OrphanProduct{Product: p}
		if b, ok := dir.buyers[p.SellerID]; ok {
			o.OwnerIsBuyer = true
			o.BuyerName = b.Username
		}
		orphans = append(orphans, o)
	}

	logger.Info("Orphaned product check: %d of %d products without a seller", len(orphans), len(products))
	return orphans, nil
}

func sortNewestFirst(products []*entity.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}
