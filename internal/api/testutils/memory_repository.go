package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/postalclerk/clerk-server/internal/repository"
)

// MemoryRepository is an in-memory repository.Repository for tests. Every
// method holds one lock, so each call is atomic like a database transaction.
type MemoryRepository struct {
	mu sync.Mutex

	// Err, when set, is returned by every method
	Err error

	clerks       map[int64]models.Clerk
	mails        map[int64]models.Mail
	items        map[int64]models.InventoryItem
	transactions []models.InventoryTransaction
	bills        map[int64]models.Bill

	nextID int64
	ticks  int64
	epoch  time.Time
}

var _ repository.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		clerks: make(map[int64]models.Clerk),
		mails:  make(map[int64]models.Mail),
		items:  make(map[int64]models.InventoryItem),
		bills:  make(map[int64]models.Bill),
		epoch:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

// id and now must be called with mu held
func (m *MemoryRepository) id() int64 {
	m.nextID++
	return m.nextID
}

// now advances a fake clock so that creation order is strictly increasing
func (m *MemoryRepository) now() time.Time {
	m.ticks++
	return m.epoch.Add(time.Duration(m.ticks) * time.Second)
}

func (m *MemoryRepository) clerkName(id *int64) *string {
	if id == nil {
		return nil
	}
	clerk, ok := m.clerks[*id]
	if !ok {
		return nil
	}
	name := clerk.Name
	return &name
}

// Transactions returns every stored transaction, including orphaned ones
func (m *MemoryRepository) Transactions() []models.InventoryTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.InventoryTransaction(nil), m.transactions...)
}

// ClerkCount returns the number of stored clerks
func (m *MemoryRepository) ClerkCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clerks)
}

// MailCount returns the number of stored mails
func (m *MemoryRepository) MailCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mails)
}

func (m *MemoryRepository) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Err
}

func (m *MemoryRepository) CreateClerk(ctx context.Context, clerk *models.Clerk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.clerks {
		if existing.Email == clerk.Email {
			return repository.ErrDuplicate
		}
	}

	clerk.ID = m.id()
	clerk.CreatedAt = m.now()
	m.clerks[clerk.ID] = *clerk
	return nil
}

func (m *MemoryRepository) GetClerkByEmail(ctx context.Context, email string) (*models.Clerk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for _, clerk := range m.clerks {
		if clerk.Email == email {
			c := clerk
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) ListClerks(ctx context.Context) ([]models.Clerk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	clerks := []models.Clerk{}
	for _, clerk := range m.clerks {
		clerk.Password = ""
		clerks = append(clerks, clerk)
	}
	sort.Slice(clerks, func(i, j int) bool { return clerks[i].ID < clerks[j].ID })
	return clerks, nil
}

func (m *MemoryRepository) DeleteClerk(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.clerks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.clerks, id)

	// ON DELETE SET NULL
	for key, mail := range m.mails {
		if sameClerk(mail.ClerkID, id) {
			mail.ClerkID = nil
			m.mails[key] = mail
		}
	}
	for key, item := range m.items {
		if sameClerk(item.ClerkID, id) {
			item.ClerkID = nil
			m.items[key] = item
		}
	}
	for i := range m.transactions {
		if sameClerk(m.transactions[i].ClerkID, id) {
			m.transactions[i].ClerkID = nil
		}
	}
	for key, bill := range m.bills {
		if sameClerk(bill.ClerkID, id) {
			bill.ClerkID = nil
			m.bills[key] = bill
		}
	}
	return nil
}

func sameClerk(ref *int64, id int64) bool {
	return ref != nil && *ref == id
}

func (m *MemoryRepository) CreateMail(ctx context.Context, mail *models.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if mail.Status == "" {
		mail.Status = models.MailStatusReceived
	}
	mail.ID = m.id()
	mail.CreatedAt = m.now()
	m.mails[mail.ID] = *mail
	return nil
}

func (m *MemoryRepository) ListMails(ctx context.Context) ([]models.Mail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	mails := []models.Mail{}
	for _, mail := range m.mails {
		mail.ClerkName = m.clerkName(mail.ClerkID)
		mails = append(mails, mail)
	}
	sort.Slice(mails, func(i, j int) bool { return mails[i].CreatedAt.After(mails[j].CreatedAt) })
	return mails, nil
}

func (m *MemoryRepository) GetMail(ctx context.Context, id int64) (*models.Mail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	mail, ok := m.mails[id]
	if !ok {
		return nil, nil
	}
	mail.ClerkName = m.clerkName(mail.ClerkID)
	return &mail, nil
}

func (m *MemoryRepository) UpdateMailStatus(ctx context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	mail, ok := m.mails[id]
	if !ok {
		return repository.ErrNotFound
	}
	mail.Status = status
	m.mails[id] = mail
	return nil
}

func (m *MemoryRepository) DeleteMail(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.mails[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.mails, id)
	return nil
}

func (m *MemoryRepository) CreateInventoryItem(
	ctx context.Context,
	item *models.InventoryItem,
	notes string,
) (*models.InventoryTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	now := m.now()
	item.ID = m.id()
	item.CreatedAt = now
	item.UpdatedAt = now
	m.items[item.ID] = *item

	txn := models.InventoryTransaction{
		ID:              m.id(),
		InventoryID:     item.ID,
		TransactionType: models.TransactionPurchase,
		Quantity:        item.Quantity,
		ClerkID:         item.ClerkID,
		Notes:           notes,
		TransactionDate: now,
	}
	m.transactions = append(m.transactions, txn)
	return &txn, nil
}

func (m *MemoryRepository) UpdateInventoryItem(
	ctx context.Context,
	item *models.InventoryItem,
	notes string,
) (*models.InventoryTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	current, ok := m.items[item.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	now := m.now()
	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = now
	m.items[item.ID] = *item

	kind, quantity, changed := models.QuantityAdjustment(current.Quantity, item.Quantity)
	if !changed {
		return nil, nil
	}
	txn := models.InventoryTransaction{
		ID:              m.id(),
		InventoryID:     item.ID,
		TransactionType: kind,
		Quantity:        quantity,
		ClerkID:         item.ClerkID,
		Notes:           notes,
		TransactionDate: now,
	}
	m.transactions = append(m.transactions, txn)
	return &txn, nil
}

func (m *MemoryRepository) DeleteInventoryItem(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryRepository) ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	return m.listItems(func(models.InventoryItem) bool { return true }, func(a, b models.InventoryItem) bool {
		return a.ItemName < b.ItemName
	})
}

func (m *MemoryRepository) ListLowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	return m.listItems(func(item models.InventoryItem) bool {
		return item.Quantity <= item.ReorderLevel
	}, func(a, b models.InventoryItem) bool {
		return a.Quantity < b.Quantity
	})
}

func (m *MemoryRepository) listItems(
	keep func(models.InventoryItem) bool,
	less func(a, b models.InventoryItem) bool,
) ([]models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	items := []models.InventoryItem{}
	for _, item := range m.items {
		if keep(item) {
			item.ClerkName = m.clerkName(item.ClerkID)
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	return items, nil
}

func (m *MemoryRepository) ListInventoryTransactions(ctx context.Context, itemID int64) ([]models.InventoryTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	transactions := []models.InventoryTransaction{}
	for i := len(m.transactions) - 1; i >= 0; i-- {
		txn := m.transactions[i]
		if txn.InventoryID == itemID {
			txn.ClerkName = m.clerkName(txn.ClerkID)
			transactions = append(transactions, txn)
		}
	}
	return transactions, nil
}

func (m *MemoryRepository) CreateBill(ctx context.Context, bill *models.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	now := m.now()
	bill.ID = m.id()
	bill.CreatedAt = now
	bill.UpdatedAt = now
	m.bills[bill.ID] = *bill
	return nil
}

func (m *MemoryRepository) ListBills(ctx context.Context, typeFilter string) ([]models.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	filter := strings.ToLower(typeFilter)
	bills := []models.Bill{}
	for _, bill := range m.bills {
		if strings.Contains(strings.ToLower(bill.Type), filter) {
			bills = append(bills, bill)
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].ID < bills[j].ID })
	return bills, nil
}

func (m *MemoryRepository) UpdateBill(ctx context.Context, bill *models.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	current, ok := m.bills[bill.ID]
	if !ok {
		return repository.ErrNotFound
	}
	bill.ClerkID = current.ClerkID
	bill.CreatedAt = current.CreatedAt
	bill.UpdatedAt = m.now()
	m.bills[bill.ID] = *bill
	return nil
}

func (m *MemoryRepository) DeleteBill(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.bills[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.bills, id)
	return nil
}
