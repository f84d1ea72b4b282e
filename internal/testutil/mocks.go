package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tranqh/finbot/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByHandle map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	Calls    int
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByHandle: make(map[string]*domain.User),
		ByID:     make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.Calls++
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByHandle retrieves a user by handle
func (m *MockUserRepository) GetByHandle(_ context.Context, handle string) (*domain.User, error) {
	m.Calls++
	if user, ok := m.ByHandle[handle]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByHandle creates a user or returns the existing one
func (m *MockUserRepository) CreateOrGetByHandle(_ context.Context, handle string) (*domain.User, error) {
	m.Calls++
	if user, ok := m.ByHandle[handle]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        uuid.New(),
		Handle:    handle,
		Balance:   decimal.Zero,
		CreatedAt: time.Now(),
	}
	m.ByHandle[handle] = user
	m.ByID[user.ID] = user
	return user, nil
}

// SetBalance overwrites the user's balance
func (m *MockUserRepository) SetBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Balance = balance
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByHandle[user.Handle] = user
	m.ByID[user.ID] = user
}

// MockTagRepository is a mock implementation of domain.TagRepository
type MockTagRepository struct {
	Tags   map[string]*domain.Tag
	NextID int32
	Calls  int
}

// NewMockTagRepository creates a new MockTagRepository
func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{
		Tags:   make(map[string]*domain.Tag),
		NextID: 1,
	}
}

// GetByName retrieves a tag by name
func (m *MockTagRepository) GetByName(_ context.Context, name string) (*domain.Tag, error) {
	m.Calls++
	if tag, ok := m.Tags[name]; ok {
		return tag, nil
	}
	return nil, domain.ErrTagNotFound
}

// Create inserts a tag, failing on duplicates
func (m *MockTagRepository) Create(_ context.Context, name string) (*domain.Tag, error) {
	m.Calls++
	if _, ok := m.Tags[name]; ok {
		return nil, domain.ErrDuplicateTag
	}
	tag := &domain.Tag{ID: m.NextID, Name: name, CreatedAt: time.Now()}
	m.NextID++
	m.Tags[name] = tag
	return tag, nil
}

// CreateOrGet inserts a tag or reuses the existing one
func (m *MockTagRepository) CreateOrGet(_ context.Context, name string) (*domain.Tag, error) {
	m.Calls++
	if tag, ok := m.Tags[name]; ok {
		return tag, nil
	}
	tag := &domain.Tag{ID: m.NextID, Name: name, CreatedAt: time.Now()}
	m.NextID++
	m.Tags[name] = tag
	return tag, nil
}

// ListAll returns all tags ordered by name
func (m *MockTagRepository) ListAll(_ context.Context) ([]*domain.Tag, error) {
	m.Calls++
	names := make([]string, 0, len(m.Tags))
	for name := range m.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	tags := make([]*domain.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, m.Tags[name])
	}
	return tags, nil
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository. When Users is set, CreateWithBalance applies
// the signed amount to the owner's balance the way the real store does.
type MockTransactionRepository struct {
	Transactions []*domain.Transaction
	Users        *MockUserRepository
	NextID       int32
	CreateErr    error
	SumErr       error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{NextID: 1}
}

// CreateWithBalance records the transaction and applies the balance delta
func (m *MockTransactionRepository) CreateWithBalance(_ context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	created := *transaction
	created.ID = m.NextID
	created.CreatedAt = time.Now()
	m.NextID++
	m.Transactions = append(m.Transactions, &created)

	if m.Users != nil {
		user, ok := m.Users.ByID[transaction.UserID]
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		user.Balance = user.Balance.Add(created.SignedAmount())
	}
	return &created, nil
}

// SumByTypeInWindow sums matching transactions within [start, end)
func (m *MockTransactionRepository) SumByTypeInWindow(_ context.Context, userID uuid.UUID, transactionType domain.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	if m.SumErr != nil {
		return decimal.Zero, m.SumErr
	}
	total := decimal.Zero
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID || transaction.Type != transactionType {
			continue
		}
		if transaction.RecordedAt.Before(start) || !transaction.RecordedAt.Before(end) {
			continue
		}
		total = total.Add(transaction.Amount)
	}
	return total, nil
}

// SumByType sums all of the user's transactions of the given type
func (m *MockTransactionRepository) SumByType(_ context.Context, userID uuid.UUID, transactionType domain.TransactionType) (decimal.Decimal, error) {
	if m.SumErr != nil {
		return decimal.Zero, m.SumErr
	}
	total := decimal.Zero
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.Type == transactionType {
			total = total.Add(transaction.Amount)
		}
	}
	return total, nil
}

// ListTaggedInWindow returns tagged transactions within [start, end)
func (m *MockTransactionRepository) ListTaggedInWindow(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID || len(transaction.Tags) == 0 {
			continue
		}
		if transaction.RecordedAt.Before(start) || !transaction.RecordedAt.Before(end) {
			continue
		}
		result = append(result, transaction)
	}
	return result, nil
}
