package impl

import (
	"context"
	"sort"
	"sync"

	"tsmarket/internal/domain/entity"
	"tsmarket/internal/domain/repository"
	"tsmarket/internal/domain/service"

	"github.com/google/uuid"
)

// memStore is an in-memory repository backend for the service tests. Execute
// serializes transactions under one mutex and restores a snapshot on error,
// so rollback semantics match a real database: a failed transaction leaves no
// trace. UpdateLedger enforces the version check of the real repository.
type memStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*entity.User
	claims     map[uuid.UUID]map[int]bool
	products   map[uuid.UUID]*entity.Product
	categories map[uuid.UUID]*entity.Category
	orders     []*entity.Order
	rewards    []*entity.Reward
	prizes     []*entity.WheelPrize
	codes      map[uuid.UUID]*entity.TopUpCode
	requests   map[uuid.UUID]*entity.TopUpRequest
	settings   entity.PaymentSettings
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[uuid.UUID]*entity.User),
		claims:     make(map[uuid.UUID]map[int]bool),
		products:   make(map[uuid.UUID]*entity.Product),
		categories: make(map[uuid.UUID]*entity.Category),
		codes:      make(map[uuid.UUID]*entity.TopUpCode),
		requests:   make(map[uuid.UUID]*entity.TopUpRequest),
	}
}

func (s *memStore) addUser(user *entity.User) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	s.users[user.ID] = &clone
	set := make(map[int]bool)
	for _, level := range user.ClaimedRewards {
		set[level] = true
	}
	s.claims[user.ID] = set
}

func (s *memStore) addProduct(product *entity.Product) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	clone := *product
	s.products[product.ID] = &clone
}

func (s *memStore) snapshot() *memStore {
	copied := newMemStore()
	for id, user := range s.users {
		clone := *user
		copied.users[id] = &clone
	}
	for id, set := range s.claims {
		cloneSet := make(map[int]bool, len(set))
		for level := range set {
			cloneSet[level] = true
		}
		copied.claims[id] = cloneSet
	}
	for id, product := range s.products {
		clone := *product
		copied.products[id] = &clone
	}
	for id, category := range s.categories {
		clone := *category
		copied.categories[id] = &clone
	}
	copied.orders = append([]*entity.Order(nil), s.orders...)
	copied.rewards = append([]*entity.Reward(nil), s.rewards...)
	copied.prizes = append([]*entity.WheelPrize(nil), s.prizes...)
	for id, code := range s.codes {
		clone := *code
		copied.codes[id] = &clone
	}
	for id, request := range s.requests {
		clone := *request
		copied.requests[id] = &clone
	}
	copied.settings = s.settings

	return copied
}

func (s *memStore) restore(snap *memStore) {
	s.users = snap.users
	s.claims = snap.claims
	s.products = snap.products
	s.categories = snap.categories
	s.orders = snap.orders
	s.rewards = snap.rewards
	s.prizes = snap.prizes
	s.codes = snap.codes
	s.requests = snap.requests
	s.settings = snap.settings
}

// Execute implements repository.TransactionManager.
func (s *memStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)

		return err
	}

	return nil
}

// RepositoryFactory implementation: the store is its own factory.
func (s *memStore) UserRepo() repository.UserRepository             { return (*memUserRepo)(s) }
func (s *memStore) ProductRepo() repository.ProductRepository      { return (*memProductRepo)(s) }
func (s *memStore) CategoryRepo() repository.CategoryRepository    { return (*memCategoryRepo)(s) }
func (s *memStore) OrderRepo() repository.OrderRepository          { return (*memOrderRepo)(s) }
func (s *memStore) RewardRepo() repository.RewardRepository        { return (*memRewardRepo)(s) }
func (s *memStore) WheelPrizeRepo() repository.WheelPrizeRepository { return (*memWheelRepo)(s) }
func (s *memStore) TopUpRepo() repository.TopUpRepository          { return (*memTopUpRepo)(s) }

type memUserRepo memStore

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *stored
	clone.ClaimedRewards = nil
	for level := range r.claims[id] {
		clone.ClaimedRewards = append(clone.ClaimedRewards, level)
	}
	sort.Ints(clone.ClaimedRewards)

	return &clone, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	(*memStore)(r).addUser(user)

	return nil
}

func (r *memUserRepo) UpdateLedger(_ context.Context, user *entity.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if stored.Version != user.Version {
		return repository.ErrVersionConflict
	}
	stored.Balance = user.Balance
	stored.XP = user.XP
	stored.Level = user.Level
	stored.WheelSpins = user.WheelSpins
	stored.Version++
	user.Version = stored.Version

	return nil
}

func (r *memUserRepo) AppendClaimedReward(_ context.Context, userID uuid.UUID, level int) error {
	set, ok := r.claims[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if set[level] {
		return repository.ErrDuplicateClaim
	}
	set[level] = true

	return nil
}

func (r *memUserRepo) SetAdmin(_ context.Context, id uuid.UUID, isAdmin bool) error {
	stored, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.IsAdmin = isAdmin

	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		users = append(users, &clone)
	}

	return users, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)
	delete(r.claims, id)

	return nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type memProductRepo memStore

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	stored, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *stored

	return &clone, nil
}

func (r *memProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		products = append(products, &clone)
	}

	return products, nil
}

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	(*memStore)(r).addProduct(product)

	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	clone := *product
	r.products[product.ID] = &clone

	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

func (r *memProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type memCategoryRepo memStore

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	stored, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	clone := *stored

	return &clone, nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		categories = append(categories, &clone)
	}

	return categories, nil
}

func (r *memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	clone := *category
	r.categories[category.ID] = &clone

	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(r.categories, id)

	return nil
}

type memOrderRepo memStore

func (r *memOrderRepo) Insert(_ context.Context, order *entity.Order) error {
	clone := *order
	r.orders = append(r.orders, &clone)

	return nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			clone := *r.orders[i]
			orders = append(orders, &clone)
		}
	}

	return orders, nil
}

func (r *memOrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		clone := *r.orders[i]
		orders = append(orders, &clone)
	}

	return orders, nil
}

func (r *memOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) TotalRevenue(_ context.Context) (float64, error) {
	total := 0.0
	for _, order := range r.orders {
		total += order.Total
	}

	return total, nil
}

type memRewardRepo memStore

func (r *memRewardRepo) FindByLevel(_ context.Context, levelRequired int) (*entity.Reward, error) {
	for _, reward := range r.rewards {
		if reward.LevelRequired == levelRequired {
			clone := *reward

			return &clone, nil
		}
	}

	return nil, repository.ErrRewardNotFound
}

func (r *memRewardRepo) List(_ context.Context) ([]*entity.Reward, error) {
	rewards := append([]*entity.Reward(nil), r.rewards...)
	sort.Slice(rewards, func(i, j int) bool {
		return rewards[i].LevelRequired < rewards[j].LevelRequired
	})

	return rewards, nil
}

func (r *memRewardRepo) Create(_ context.Context, reward *entity.Reward) error {
	clone := *reward
	r.rewards = append(r.rewards, &clone)

	return nil
}

func (r *memRewardRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, reward := range r.rewards {
		if reward.ID == id {
			r.rewards = append(r.rewards[:i], r.rewards[i+1:]...)

			return nil
		}
	}

	return repository.ErrRewardNotFound
}

type memWheelRepo memStore

func (r *memWheelRepo) List(_ context.Context) ([]*entity.WheelPrize, error) {
	return append([]*entity.WheelPrize(nil), r.prizes...), nil
}

func (r *memWheelRepo) Create(_ context.Context, prize *entity.WheelPrize) error {
	clone := *prize
	r.prizes = append(r.prizes, &clone)

	return nil
}

func (r *memWheelRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, prize := range r.prizes {
		if prize.ID == id {
			r.prizes = append(r.prizes[:i], r.prizes[i+1:]...)

			return nil
		}
	}

	return repository.ErrWheelPrizeNotFound
}

type memTopUpRepo memStore

func (r *memTopUpRepo) FindUnusedCode(_ context.Context, code string) (*entity.TopUpCode, error) {
	for _, stored := range r.codes {
		if stored.Code == code && !stored.IsUsed {
			clone := *stored

			return &clone, nil
		}
	}

	return nil, repository.ErrTopUpCodeNotFound
}

func (r *memTopUpRepo) MarkCodeUsed(_ context.Context, codeID, userID uuid.UUID) error {
	stored, ok := r.codes[codeID]
	if !ok {
		return repository.ErrTopUpCodeNotFound
	}
	if stored.IsUsed {
		return repository.ErrTopUpCodeUsed
	}
	stored.IsUsed = true
	stored.UsedBy = &userID

	return nil
}

func (r *memTopUpRepo) CreateCode(_ context.Context, code *entity.TopUpCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	clone := *code
	r.codes[code.ID] = &clone

	return nil
}

func (r *memTopUpRepo) ListCodes(_ context.Context) ([]*entity.TopUpCode, error) {
	codes := make([]*entity.TopUpCode, 0, len(r.codes))
	for _, code := range r.codes {
		clone := *code
		codes = append(codes, &clone)
	}

	return codes, nil
}

func (r *memTopUpRepo) DeleteCode(_ context.Context, id uuid.UUID) error {
	if _, ok := r.codes[id]; !ok {
		return repository.ErrTopUpCodeNotFound
	}
	delete(r.codes, id)

	return nil
}

func (r *memTopUpRepo) CreateRequest(_ context.Context, request *entity.TopUpRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	clone := *request
	r.requests[request.ID] = &clone

	return nil
}

func (r *memTopUpRepo) FindRequestByID(_ context.Context, id uuid.UUID) (*entity.TopUpRequest, error) {
	stored, ok := r.requests[id]
	if !ok {
		return nil, repository.ErrTopUpRequestNotFound
	}
	clone := *stored

	return &clone, nil
}

func (r *memTopUpRepo) ListRequestsByUser(_ context.Context, userID uuid.UUID) ([]*entity.TopUpRequest, error) {
	var requests []*entity.TopUpRequest
	for _, request := range r.requests {
		if request.UserID == userID {
			clone := *request
			requests = append(requests, &clone)
		}
	}

	return requests, nil
}

func (r *memTopUpRepo) ListRequests(_ context.Context) ([]*entity.TopUpRequest, error) {
	requests := make([]*entity.TopUpRequest, 0, len(r.requests))
	for _, request := range r.requests {
		clone := *request
		requests = append(requests, &clone)
	}

	return requests, nil
}

func (r *memTopUpRepo) UpdateRequest(_ context.Context, request *entity.TopUpRequest) error {
	if _, ok := r.requests[request.ID]; !ok {
		return repository.ErrTopUpRequestNotFound
	}
	clone := *request
	r.requests[request.ID] = &clone

	return nil
}

func (r *memTopUpRepo) PaymentSettings(_ context.Context) (*entity.PaymentSettings, error) {
	clone := r.settings

	return &clone, nil
}

func (r *memTopUpRepo) SavePaymentSettings(_ context.Context, settings *entity.PaymentSettings) error {
	r.settings = *settings

	return nil
}

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	events []*service.LedgerEvent
}

func (p *capturingPublisher) PublishLedgerEvent(_ context.Context, event *service.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.EventType)
	}

	return types
}

// fixedRandom always returns the same draw, making wheel outcomes deterministic.
type fixedRandom struct{ value float64 }

func (f fixedRandom) Float64() float64 { return f.value }
