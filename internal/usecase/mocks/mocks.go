package mocks

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iho/hucha/internal/domain"
	"github.com/iho/hucha/internal/usecase"
)

// MockTransaction is a no-op transaction that records its outcome.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
// Every Begin hands out the same Tx so tests can inspect its outcome.
type MockTransactionManager struct {
	Tx        *MockTransaction
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{Tx: &MockTransaction{}}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return m.Tx, nil
}

// MockCache is an in-memory cache with prefix deletion.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc            func(ctx context.Context, key string) ([]byte, error)
	SetFunc            func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc         func(ctx context.Context, key string) error
	DeleteByPrefixFunc func(ctx context.Context, prefix string) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, usecase.ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MockCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if m.DeleteByPrefixFunc != nil {
		return m.DeleteByPrefixFunc(ctx, prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

// Len reports the number of live entries.
func (m *MockCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Has reports whether key is cached.
func (m *MockCache) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key]
	return ok
}

// MockWriteRepository is an in-memory WriteRepository keyed by the id
// extracted with IDOf.
type MockWriteRepository[E any] struct {
	mu       sync.RWMutex
	entities map[string]*E

	IDOf func(*E) string

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, entity *E) error
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, entity *E) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) (int64, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*E, error)
}

func NewMockWriteRepository[E any](idOf func(*E) string) *MockWriteRepository[E] {
	return &MockWriteRepository[E]{
		entities: make(map[string]*E),
		IDOf:     idOf,
	}
}

func (m *MockWriteRepository[E]) Create(ctx context.Context, tx usecase.Transaction, entity *E) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[m.IDOf(entity)] = entity
	return nil
}

func (m *MockWriteRepository[E]) Update(ctx context.Context, tx usecase.Transaction, entity *E) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[m.IDOf(entity)] = entity
	return nil
}

func (m *MockWriteRepository[E]) Delete(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entities[id]; !ok {
		return 0, nil
	}
	delete(m.entities, id)
	return 1, nil
}

func (m *MockWriteRepository[E]) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*E, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entities[id], nil
}

// Get returns a stored entity without the repository contract.
func (m *MockWriteRepository[E]) Get(id string) *E {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entities[id]
}

// Put seeds the store directly.
func (m *MockWriteRepository[E]) Put(entity *E) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[m.IDOf(entity)] = entity
}

// Len reports the number of stored entities.
func (m *MockWriteRepository[E]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	*MockWriteRepository[domain.Account]

	UpdateBalanceFunc func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		MockWriteRepository: NewMockWriteRepository(func(a *domain.Account) string { return a.ID }),
	}
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, account)
	}
	m.Put(account)
	return nil
}

// MockReadRepository is an in-memory ReadRepository.
type MockReadRepository[D any] struct {
	mu   sync.RWMutex
	dtos map[string]*D

	GetByIDFunc func(ctx context.Context, id string) (*D, error)
	ListFunc    func(ctx context.Context, q usecase.ListQuery) (*usecase.Page[D], error)
}

func NewMockReadRepository[D any]() *MockReadRepository[D] {
	return &MockReadRepository[D]{dtos: make(map[string]*D)}
}

func (m *MockReadRepository[D]) GetByID(ctx context.Context, id string) (*D, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dtos[id], nil
}

func (m *MockReadRepository[D]) List(ctx context.Context, q usecase.ListQuery) (*usecase.Page[D], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	page := &usecase.Page[D]{
		Items:      make([]D, 0, len(m.dtos)),
		TotalCount: int64(len(m.dtos)),
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
	for _, d := range m.dtos {
		page.Items = append(page.Items, *d)
	}
	return page, nil
}

// Put seeds a DTO under id.
func (m *MockReadRepository[D]) Put(id string, dto *D) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dtos[id] = dto
}

// MockReferenceChecker is a mock ReferenceChecker seeded with existing
// entity ids and taken names.
type MockReferenceChecker struct {
	mu       sync.RWMutex
	existing map[string]bool
	taken    map[string]string

	ExistsFunc    func(ctx context.Context, entity, id string) (bool, error)
	NameTakenFunc func(ctx context.Context, entity, ownerID, name, excludeID string) (bool, error)
}

func NewMockReferenceChecker() *MockReferenceChecker {
	return &MockReferenceChecker{
		existing: make(map[string]bool),
		taken:    make(map[string]string),
	}
}

// AddExisting marks entity/id as present.
func (m *MockReferenceChecker) AddExisting(entity, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.existing[entity+"/"+id] = true
}

// AddTaken marks name as taken by holderID within entity/ownerID.
func (m *MockReferenceChecker) AddTaken(entity, ownerID, name, holderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taken[entity+"/"+ownerID+"/"+name] = holderID
}

func (m *MockReferenceChecker) Exists(ctx context.Context, entity, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, entity, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.existing[entity+"/"+id], nil
}

func (m *MockReferenceChecker) NameTaken(ctx context.Context, entity, ownerID, name, excludeID string) (bool, error) {
	if m.NameTakenFunc != nil {
		return m.NameTakenFunc(ctx, entity, ownerID, name, excludeID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	holder, ok := m.taken[entity+"/"+ownerID+"/"+name]
	return ok && holder != excludeID, nil
}

// MockIDGenerator returns sequential ids.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "id-" + strconv.Itoa(m.next)
}

// MockJobScheduler records cancelled job ids.
type MockJobScheduler struct {
	mu        sync.Mutex
	next      int
	Cancelled []string

	GenerateJobIDFunc func() string
	CancelFunc        func(ctx context.Context, jobID string) error
}

func (m *MockJobScheduler) GenerateJobID() string {
	if m.GenerateJobIDFunc != nil {
		return m.GenerateJobIDFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "job-" + strconv.Itoa(m.next)
}

func (m *MockJobScheduler) Cancel(ctx context.Context, jobID string) error {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, jobID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cancelled = append(m.Cancelled, jobID)
	return nil
}
