package service_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/service"
	"github.com/naol728/rms/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeMenuRepo struct {
	items   map[int64]*models.MenuItem
	listErr error
}

var _ storage.MenuStorage = (*fakeMenuRepo)(nil)

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[int64]*models.MenuItem)}
}

func (f *fakeMenuRepo) ListMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.MenuItem
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeMenuRepo) GetMenuItemByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, storage.ErrMenuItemNotFound
	}
	return item, nil
}

func (f *fakeMenuRepo) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	item.ID = int64(len(f.items) + 1)
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeMenuRepo) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return storage.ErrMenuItemNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) DeleteMenuItem(ctx context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return storage.ErrMenuItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeMenuRepo) SetAvailability(ctx context.Context, id int64, available bool) error {
	item, ok := f.items[id]
	if !ok {
		return storage.ErrMenuItemNotFound
	}
	item.IsAvailable = available
	return nil
}

func (f *fakeMenuRepo) ListActiveCategories(ctx context.Context) ([]*models.Category, error) {
	return []*models.Category{}, nil
}

type fakeCartRepo struct {
	lines  map[int64]*models.CartLine
	nextID int64
}

var _ storage.CartStorage = (*fakeCartRepo)(nil)

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{lines: make(map[int64]*models.CartLine), nextID: 1}
}

func (f *fakeCartRepo) GetCartLines(ctx context.Context, userID int64) ([]*models.CartLine, error) {
	var out []*models.CartLine
	for _, line := range f.lines {
		if line.UserID == userID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) GetLineForItem(ctx context.Context, userID, menuItemID int64) (*models.CartLine, error) {
	for _, line := range f.lines {
		if line.UserID == userID && line.MenuItemID == menuItemID {
			return line, nil
		}
	}
	return nil, storage.ErrCartLineNotFound
}

func (f *fakeCartRepo) InsertLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	line.ID = f.nextID
	f.nextID++
	f.lines[line.ID] = line
	return line, nil
}

func (f *fakeCartRepo) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	line, ok := f.lines[lineID]
	if !ok {
		return storage.ErrCartLineNotFound
	}
	line.Quantity = quantity
	return nil
}

func (f *fakeCartRepo) DeleteLine(ctx context.Context, lineID int64) error {
	delete(f.lines, lineID)
	return nil
}

func (f *fakeCartRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	for id, line := range f.lines {
		if line.UserID == userID {
			delete(f.lines, id)
		}
	}
	return nil
}

func (f *fakeCartRepo) DeleteAllForUserTx(ctx context.Context, tx *sql.Tx, userID int64) error {
	return f.DeleteAllForUser(ctx, userID)
}

type fakeOrderRepo struct {
	orders     []*models.Order
	orderLines []*models.OrderLine
	statuses   map[int64]models.OrderStatus
	nextID     int64
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{statuses: make(map[int64]models.OrderStatus), nextID: 1}
}

func (f *fakeOrderRepo) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) (*models.Order, error) {
	order.ID = f.nextID
	f.nextID++
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, order)
	f.statuses[order.ID] = order.Status
	return order, nil
}

func (f *fakeOrderRepo) CreateOrderLineTx(ctx context.Context, tx *sql.Tx, line *models.OrderLine) error {
	f.orderLines = append(f.orderLines, line)
	return nil
}

func (f *fakeOrderRepo) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderRepo) ListOrdersByWaiter(ctx context.Context, waiterID int64) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range f.orders {
		if o.WaiterID == waiterID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetOrderLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error) {
	var out []*models.OrderLine
	for _, l := range f.orderLines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	if _, ok := f.statuses[orderID]; !ok {
		return storage.ErrOrderNotFound
	}
	f.statuses[orderID] = status
	return nil
}

func (f *fakeOrderRepo) RecentOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	if len(f.orders) <= limit {
		return f.orders, nil
	}
	return f.orders[:limit], nil
}

func (f *fakeOrderRepo) GetSalesStats(ctx context.Context) (*storage.SalesStats, error) {
	return &storage.SalesStats{}, nil
}

type fakeTableRepo struct {
	tables map[int64]*models.Table
	setErr error
}

var _ storage.TableStorage = (*fakeTableRepo)(nil)

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[int64]*models.Table)}
}

func (f *fakeTableRepo) ListAvailableTables(ctx context.Context) ([]*models.Table, error) {
	var out []*models.Table
	for _, t := range f.tables {
		if t.IsAvailable {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTableRepo) SetTableAvailability(ctx context.Context, id int64, available bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	table, ok := f.tables[id]
	if !ok {
		return storage.ErrTableNotFound
	}
	table.IsAvailable = available
	return nil
}

func (f *fakeTableRepo) GetOccupancy(ctx context.Context) (*storage.TableOccupancy, error) {
	occ := &storage.TableOccupancy{}
	for _, t := range f.tables {
		occ.Total++
		if t.IsAvailable {
			occ.Available++
		}
	}
	return occ, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = int64(len(f.users) + 1)
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) ListStaff(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Role == models.RoleStaff {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	for email, u := range f.users {
		if u.ID == user.ID {
			delete(f.users, email)
			f.users[user.Email] = user
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error {
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (f *fakeUserRepo) CountActiveStaff(ctx context.Context) (int, error) {
	count := 0
	for _, u := range f.users {
		if u.Role == models.RoleStaff && u.IsActive {
			count++
		}
	}
	return count, nil
}

func seedMenu(repo *fakeMenuRepo) {
	repo.items[1] = &models.MenuItem{ID: 1, Name: "Burger", Description: "Juicy beef burger with fries", Price: decimal.RequireFromString("10.50"), Category: "Main Course", IsAvailable: true}
	repo.items[2] = &models.MenuItem{ID: 2, Name: "Coffee", Description: "Hot brewed coffee", Price: decimal.RequireFromString("3.00"), Category: "Beverage", IsAvailable: true}
	repo.items[3] = &models.MenuItem{ID: 3, Name: "Cheese Salad", Description: "Delicious cheese salad", Price: decimal.RequireFromString("12.99"), Category: "Appetizer", IsAvailable: false}
	repo.items[4] = &models.MenuItem{ID: 4, Name: "Caesar Salad", Description: "Fresh Caesar salad with croutons", Price: decimal.RequireFromString("8.00"), Category: "Appetizer", IsAvailable: true}
}

func TestMenuService_Load_FallbackOnError(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	menuRepo.listErr = errors.New("connection refused")

	menuSvc := service.NewMenuService(testLogger(), menuRepo, nil)
	menuSvc.Load(context.Background())

	assert.True(t, menuSvc.Loaded(), "Load should complete even when the query fails")
	assert.Error(t, menuSvc.LastError(), "the load failure should be recorded")
	assert.Len(t, menuSvc.Items(), 12, "fallback catalog should replace the snapshot")

	// A later successful load clears the recorded failure.
	menuRepo.listErr = nil
	seedMenu(menuRepo)
	menuSvc.Load(context.Background())
	assert.NoError(t, menuSvc.LastError())
	assert.Len(t, menuSvc.Items(), 4)
}

func TestMenuService_Filter(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	seedMenu(menuRepo)

	menuSvc := service.NewMenuService(testLogger(), menuRepo, nil)
	menuSvc.Load(context.Background())

	// Case-insensitive name match; the unavailable Cheese Salad must be
	// excluded even though its name matches.
	salads := menuSvc.Filter("salad", "")
	assert.Len(t, salads, 1)
	assert.Equal(t, "Caesar Salad", salads[0].Name)

	// Description matches count too.
	byDesc := menuSvc.Filter("croutons", "")
	assert.Len(t, byDesc, 1)

	// Exact category match.
	mains := menuSvc.Filter("", "Main Course")
	assert.Len(t, mains, 1)
	assert.Equal(t, "Burger", mains[0].Name)

	// The sentinel category matches everything available.
	all := menuSvc.Filter("", service.CategoryAll)
	assert.Len(t, all, 3)

	// Search and category combine conjunctively.
	none := menuSvc.Filter("burger", "Beverage")
	assert.Empty(t, none)
}

func TestCartService_AddItem_NewAndIncrement(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	seedMenu(menuRepo)
	cartRepo := newFakeCartRepo()
	cartSvc := service.NewCartService(testLogger(), cartRepo, menuRepo)
	ctx := context.Background()

	lines, err := cartSvc.AddItem(ctx, 7, 1, 2)
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("10.50")), "unit price should be captured from the menu item")
	assert.Equal(t, "Burger", lines[0].Name)

	// Adding the same item again increments the existing line instead of
	// creating a second one.
	lines, err = cartSvc.AddItem(ctx, 7, 1, 1)
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	// Zero quantity is coerced to one.
	lines, err = cartSvc.AddItem(ctx, 7, 2, 0)
	assert.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCartService_AddItem_UnknownMenuItem(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	cartRepo := newFakeCartRepo()
	cartSvc := service.NewCartService(testLogger(), cartRepo, menuRepo)

	_, err := cartSvc.AddItem(context.Background(), 7, 99, 1)
	assert.ErrorIs(t, err, storage.ErrMenuItemNotFound)
}

func TestCartService_CapturedPriceSurvivesMenuEdit(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	seedMenu(menuRepo)
	cartRepo := newFakeCartRepo()
	cartSvc := service.NewCartService(testLogger(), cartRepo, menuRepo)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, 7, 1, 1)
	assert.NoError(t, err)

	// Raising the menu price must not touch the captured line price.
	menuRepo.items[1].Price = decimal.RequireFromString("99.00")

	lines, err := cartSvc.GetCart(ctx, 7)
	assert.NoError(t, err)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("10.50")))
}

func TestCartService_UpdateQuantity_ZeroRemoves(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	seedMenu(menuRepo)
	cartRepo := newFakeCartRepo()
	cartSvc := service.NewCartService(testLogger(), cartRepo, menuRepo)
	ctx := context.Background()

	lines, err := cartSvc.AddItem(ctx, 7, 1, 2)
	assert.NoError(t, err)
	lineID := lines[0].ID

	lines, err = cartSvc.UpdateQuantity(ctx, 7, lineID, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, lines[0].Quantity)

	lines, err = cartSvc.UpdateQuantity(ctx, 7, lineID, 0)
	assert.NoError(t, err)
	assert.Empty(t, lines, "zero quantity should remove the line")

	// Removing an already-absent line is not an error.
	lines, err = cartSvc.RemoveItem(ctx, 7, lineID)
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartService_Summarize(t *testing.T) {
	cartSvc := service.NewCartService(testLogger(), newFakeCartRepo(), newFakeMenuRepo())

	lines := []*models.CartLine{
		{UnitPrice: decimal.RequireFromString("10.50"), Quantity: 2},
		{UnitPrice: decimal.RequireFromString("3.00"), Quantity: 1},
	}
	summary := cartSvc.Summarize(lines)
	assert.Equal(t, 3, summary.TotalItems)
	assert.True(t, summary.TotalPrice.Equal(decimal.RequireFromString("24.00")))

	empty := cartSvc.Summarize(nil)
	assert.Equal(t, 0, empty.TotalItems)
	assert.True(t, empty.TotalPrice.IsZero())
}

func checkoutFixture(t *testing.T) (service.CheckoutService, *fakeCartRepo, *fakeOrderRepo, *fakeTableRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cartRepo := newFakeCartRepo()
	orderRepo := newFakeOrderRepo()
	tableRepo := newFakeTableRepo()
	svc := service.NewCheckoutService(testLogger(), db, cartRepo, orderRepo, tableRepo)
	return svc, cartRepo, orderRepo, tableRepo, mock
}

func seedCart(cartRepo *fakeCartRepo, userID int64) {
	cartRepo.lines[1] = &models.CartLine{ID: 1, UserID: userID, MenuItemID: 1, Name: "Burger", UnitPrice: decimal.RequireFromString("10.50"), Quantity: 2}
	cartRepo.lines[2] = &models.CartLine{ID: 2, UserID: userID, MenuItemID: 2, Name: "Coffee", UnitPrice: decimal.RequireFromString("3.00"), Quantity: 1}
	cartRepo.nextID = 3
}

func TestCheckout_TotalsAndCartClear(t *testing.T) {
	svc, cartRepo, orderRepo, _, mock := checkoutFixture(t)
	seedCart(cartRepo, 7)

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.Checkout(context.Background(), service.CheckoutRequest{
		UserID:       7,
		CustomerName: "Alice",
	})
	assert.NoError(t, err)
	assert.NotNil(t, result)

	order := result.Order
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("24.00")), "subtotal, got %s", order.Subtotal)
	assert.True(t, order.TaxAmount.Equal(decimal.RequireFromString("1.92")), "8%% tax, got %s", order.TaxAmount)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.92")), "total, got %s", order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Empty(t, result.TableWarning)

	// One order line per cart line, with the captured unit price.
	assert.Len(t, orderRepo.orderLines, 2)
	assert.Equal(t, order.ID, orderRepo.orderLines[0].OrderID)

	// The cart is cleared as part of the checkout.
	remaining, err := cartRepo.GetCartLines(context.Background(), 7)
	assert.NoError(t, err)
	assert.Empty(t, remaining)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_ValidationFailuresLeaveCartIntact(t *testing.T) {
	svc, cartRepo, orderRepo, _, _ := checkoutFixture(t)
	seedCart(cartRepo, 7)

	_, err := svc.Checkout(context.Background(), service.CheckoutRequest{
		UserID:       7,
		CustomerName: "   ",
	})
	assert.ErrorIs(t, err, service.ErrCustomerNameRequired)

	_, err = svc.Checkout(context.Background(), service.CheckoutRequest{
		UserID:       99,
		CustomerName: "Bob",
	})
	assert.ErrorIs(t, err, service.ErrEmptyCart)

	assert.Empty(t, orderRepo.orders, "no order may exist after a failed checkout")
	lines, _ := cartRepo.GetCartLines(context.Background(), 7)
	assert.Len(t, lines, 2, "cart must be untouched after a failed checkout")
}

func TestCheckout_TableFlip(t *testing.T) {
	svc, cartRepo, _, tableRepo, mock := checkoutFixture(t)
	seedCart(cartRepo, 7)
	tableRepo.tables[3] = &models.Table{ID: 3, TableNumber: 3, IsAvailable: true}

	mock.ExpectBegin()
	mock.ExpectCommit()

	tableID := int64(3)
	result, err := svc.Checkout(context.Background(), service.CheckoutRequest{
		UserID:       7,
		CustomerName: "Alice",
		TableID:      &tableID,
	})
	assert.NoError(t, err)
	assert.Empty(t, result.TableWarning)
	assert.False(t, tableRepo.tables[3].IsAvailable, "the table should be marked occupied")
}

func TestCheckout_TableFlipFailureIsWarningOnly(t *testing.T) {
	svc, cartRepo, orderRepo, tableRepo, mock := checkoutFixture(t)
	seedCart(cartRepo, 7)
	tableRepo.setErr = errors.New("deadlock detected")

	mock.ExpectBegin()
	mock.ExpectCommit()

	tableID := int64(3)
	result, err := svc.Checkout(context.Background(), service.CheckoutRequest{
		UserID:       7,
		CustomerName: "Alice",
		TableID:      &tableID,
	})
	assert.NoError(t, err, "a failed table flip must not fail the checkout")
	assert.NotEmpty(t, result.TableWarning)
	assert.Len(t, orderRepo.orders, 1, "the order stays durable despite the table failure")
}

func TestOrderService_Transition(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.statuses[1] = models.StatusServed
	orderSvc := service.NewOrderService(testLogger(), orderRepo)
	ctx := context.Background()

	// Any recognized status is accepted, including regressions.
	err := orderSvc.Transition(ctx, 1, "pending")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, orderRepo.statuses[1])

	err = orderSvc.Transition(ctx, 1, "done")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
	assert.Equal(t, models.StatusPending, orderRepo.statuses[1], "a rejected transition must not change the stored status")

	err = orderSvc.Transition(ctx, 42, "ready")
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
}

func TestOrderService_Statuses(t *testing.T) {
	orderSvc := service.NewOrderService(testLogger(), newFakeOrderRepo())
	statuses := orderSvc.Statuses()
	assert.Equal(t, []models.OrderStatus{
		models.StatusPending, models.StatusPreparing, models.StatusReady,
		models.StatusServed, models.StatusCancelled,
	}, statuses)
}

func TestAuthService_LoginAndRegister(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	userRepo := newFakeUserRepo()
	authSvc := service.NewAuthService(testLogger(), userRepo, 60*time.Minute)
	ctx := context.Background()

	user, err := authSvc.Register(ctx, "Alice", "alice@example.com", "password123", "")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role, "role should default to staff")
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PassHash, []byte("password123")))

	token, logged, err := authSvc.Login(ctx, "alice@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	_, _, err = authSvc.Login(ctx, "alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	// Unknown email maps to the same error as a wrong password.
	_, _, err = authSvc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authSvc.Register(ctx, "Alice2", "alice@example.com", "password123", "")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestAuthService_DeactivatedAccount(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	userRepo := newFakeUserRepo()
	authSvc := service.NewAuthService(testLogger(), userRepo, 60*time.Minute)
	ctx := context.Background()

	user, err := authSvc.Register(ctx, "Bob", "bob@example.com", "password123", "")
	assert.NoError(t, err)
	user.IsActive = false

	_, _, err = authSvc.Login(ctx, "bob@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestStaffService_AddAndUpdate(t *testing.T) {
	userRepo := newFakeUserRepo()
	staffSvc := service.NewStaffService(testLogger(), userRepo)
	ctx := context.Background()

	user, err := staffSvc.AddStaff(ctx, "Carol", "carol@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.True(t, user.IsActive)

	_, err = staffSvc.AddStaff(ctx, "Carol2", "carol@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	err = staffSvc.UpdateStaff(ctx, user.ID, "Carol", "carol@example.com", false)
	assert.NoError(t, err)
	updated, err := userRepo.GetUserByID(ctx, user.ID)
	assert.NoError(t, err)
	assert.False(t, updated.IsActive)

	err = staffSvc.RemoveStaff(ctx, 404)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
