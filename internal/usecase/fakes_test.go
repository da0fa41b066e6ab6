package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cwrs/internal/domain/entity"
	"cwrs/pkg/errors"
)

type memUsers struct {
	mu    sync.Mutex
	users map[entity.Role]map[string]*entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{users: map[entity.Role]map[string]*entity.User{
		entity.RoleSeller: {},
		entity.RoleBuyer:  {},
	}}
	for _, u := range users {
		m.users[u.Role][u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Role][user.ID] = user
	return nil
}

func (m *memUsers) GetByID(_ context.Context, role entity.Role, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[role][id]; ok {
		c := *u
		return &c, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (m *memUsers) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if u, err := m.GetByID(ctx, entity.RoleSeller, id); err == nil {
		return u, nil
	}
	return m.GetByID(ctx, entity.RoleBuyer, id)
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, role := range []entity.Role{entity.RoleSeller, entity.RoleBuyer} {
		for _, u := range m.users[role] {
			if u.Username == username {
				c := *u
				return &c, nil
			}
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (m *memUsers) ListByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.User
	for _, u := range m.users[role] {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) Update(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *user
	m.users[user.Role][user.ID] = &c
	return nil
}

type memProfiles struct {
	profiles map[entity.Role]map[string]*entity.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: map[entity.Role]map[string]*entity.Profile{
		entity.RoleSeller: {},
		entity.RoleBuyer:  {},
	}}
}

func (m *memProfiles) Get(_ context.Context, role entity.Role, userID string) (*entity.Profile, error) {
	if p, ok := m.profiles[role][userID]; ok {
		c := *p
		return &c, nil
	}
	return nil, errors.NotFound("Profile", nil)
}

func (m *memProfiles) Save(_ context.Context, role entity.Role, profile *entity.Profile) error {
	c := *profile
	m.profiles[role][profile.OwnerID()] = &c
	return nil
}

func (m *memProfiles) ListByRole(_ context.Context, role entity.Role) ([]*entity.Profile, error) {
	var out []*entity.Profile
	for _, p := range m.profiles[role] {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

type memProducts struct {
	seq      int
	products map[string]*entity.Product
}

func newMemProducts(products ...*entity.Product) *memProducts {
	m := &memProducts{products: map[string]*entity.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, product *entity.Product) error {
	m.seq++
	product.ID = fmt.Sprintf("p%d", m.seq)
	c := *product
	m.products[product.ID] = &c
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := m.products[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, errors.NotFound("Product", nil)
}

func (m *memProducts) Update(_ context.Context, product *entity.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	c := *product
	m.products[product.ID] = &c
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	delete(m.products, id)
	return nil
}

func (m *memProducts) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.products {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	all, _ := m.List(ctx)
	var out []*entity.Product
	for _, p := range all {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memCarts struct {
	carts map[string]*entity.Cart
}

func newMemCarts() *memCarts {
	return &memCarts{carts: map[string]*entity.Cart{}}
}

func (m *memCarts) Get(_ context.Context, buyerID string) (*entity.Cart, error) {
	if c, ok := m.carts[buyerID]; ok {
		cp := *c
		cp.Items = append([]entity.CartItem(nil), c.Items...)
		return &cp, nil
	}
	return &entity.Cart{BuyerID: buyerID}, nil
}

func (m *memCarts) Save(_ context.Context, cart *entity.Cart) error {
	cp := *cart
	cp.Items = append([]entity.CartItem(nil), cart.Items...)
	m.carts[cart.BuyerID] = &cp
	return nil
}

func (m *memCarts) Clear(_ context.Context, buyerID string) error {
	delete(m.carts, buyerID)
	return nil
}

type memOrders struct {
	mu      sync.Mutex
	seq     int
	orders  map[string]*entity.Order
	failFor string
}

func newMemOrders(orders ...*entity.Order) *memOrders {
	m := &memOrders{orders: map[string]*entity.Order{}}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *memOrders) Create(_ context.Context, order *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.SellerID == m.failFor {
		return errors.Internal("Failed to create order", nil)
	}
	m.seq++
	order.ID = fmt.Sprintf("o%d", m.seq)
	c := *order
	m.orders[order.ID] = &c
	return nil
}

func (m *memOrders) SetOrderNumber(_ context.Context, id, orderNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	o.OrderNumber = orderNumber
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[id]; ok {
		c := *o
		return &c, nil
	}
	return nil, errors.NotFound("Order", nil)
}

func (m *memOrders) list(keep func(*entity.Order) bool) []*entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Order
	for _, o := range m.orders {
		if keep(o) {
			c := *o
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memOrders) ListByBuyer(_ context.Context, buyerID string) ([]*entity.Order, error) {
	return m.list(func(o *entity.Order) bool { return o.BuyerID == buyerID }), nil
}

func (m *memOrders) ListBySeller(_ context.Context, sellerID string) ([]*entity.Order, error) {
	return m.list(func(o *entity.Order) bool { return o.SellerID == sellerID }), nil
}

func (m *memOrders) Confirm(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	o.Status = entity.OrderStatusConfirmed
	o.ConfirmedAt = &at
	return nil
}

type memChats struct {
	mu    sync.Mutex
	chats map[string]*entity.Chat
}

func newMemChats() *memChats {
	return &memChats{chats: map[string]*entity.Chat{}}
}

func (m *memChats) Create(_ context.Context, chat *entity.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *chat
	m.chats[chat.ID] = &c
	return nil
}

func (m *memChats) GetByID(_ context.Context, id string) (*entity.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.chats[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, errors.NotFound("Chat", nil)
}

func (m *memChats) ListByParticipant(_ context.Context, userID string) ([]*entity.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Chat
	for _, c := range m.chats {
		if c.HasParticipant(userID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memChats) WatchByParticipant(ctx context.Context, userID string, fn func([]*entity.Chat) error) error {
	chats, _ := m.ListByParticipant(ctx, userID)
	return fn(chats)
}

type memMessages struct {
	mu       sync.Mutex
	seq      int
	messages []*entity.Message
}

func (m *memMessages) Create(_ context.Context, message *entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	message.ID = fmt.Sprintf("m%d", m.seq)
	c := *message
	m.messages = append(m.messages, &c)
	return nil
}

func (m *memMessages) ListByChat(_ context.Context, chatID string) ([]*entity.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Message
	for _, msg := range m.messages {
		if msg.ChatID == chatID {
			c := *msg
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *memMessages) Latest(ctx context.Context, chatID string) (*entity.Message, error) {
	msgs, _ := m.ListByChat(ctx, chatID)
	if len(msgs) == 0 {
		return nil, errors.NotFound("Message", nil)
	}
	return msgs[len(msgs)-1], nil
}

func (m *memMessages) CountUnread(_ context.Context, chatID, receiverID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.messages {
		if msg.ChatID == chatID && msg.ReceiverID == receiverID && !msg.Read {
			n++
		}
	}
	return n, nil
}

func (m *memMessages) MarkRead(_ context.Context, chatID, receiverID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.messages {
		if msg.ChatID == chatID && msg.ReceiverID == receiverID && !msg.Read {
			msg.Read = true
			n++
		}
	}
	return n, nil
}

func (m *memMessages) WatchByChat(ctx context.Context, chatID string, fn func([]*entity.Message) error) error {
	msgs, _ := m.ListByChat(ctx, chatID)
	return fn(msgs)
}

func seller(id, name string) *entity.User {
	return &entity.User{ID: id, Username: name, Email: name + "@example.com", Role: entity.RoleSeller}
}

func buyer(id, name string) *entity.User {
	return &entity.User{ID: id, Username: name, Email: name + "@example.com", Role: entity.RoleBuyer}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
