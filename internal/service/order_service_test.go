package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/events"
	"github.com/ignatzorin/marketplace-backend/internal/models"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/ident"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Purchase(ctx context.Context, orderID, listingID string, buyerID uuid.UUID, paidWei int64) (*models.Order, error) {
	args := m.Called(ctx, orderID, listingID, buyerID, paidWei)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) ApplySignal(ctx context.Context, orderID string, callerID uuid.UUID, party valueobject.Party, kind valueobject.SignalKind, value bool) (*models.Order, valueobject.Outcome, error) {
	args := m.Called(ctx, orderID, callerID, party, kind, value)
	if args.Get(0) == nil {
		return nil, valueobject.OutcomeNone, args.Error(2)
	}
	return args.Get(0).(*models.Order), args.Get(1).(valueobject.Outcome), args.Error(2)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByParticipant(ctx context.Context, accountID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]models.Order), args.Error(1)
}

// recordingNotifier запоминает все отправленные события.
type recordingNotifier struct {
	sent []sentEvent
}

type sentEvent struct {
	accountID uuid.UUID
	kind      string
}

func (n *recordingNotifier) Notify(accountID uuid.UUID, kind string, payload any) error {
	n.sent = append(n.sent, sentEvent{accountID: accountID, kind: kind})
	return nil
}

func (n *recordingNotifier) kinds() []string {
	out := make([]string, 0, len(n.sent))
	for _, e := range n.sent {
		out = append(out, e.kind)
	}
	return out
}

func testOrder(buyerID, sellerID uuid.UUID) *models.Order {
	return &models.Order{
		ID:        ident.NewOrderID(),
		ListingID: ident.NewListingID(),
		BuyerID:   buyerID,
		SellerID:  sellerID,
		AmountWei: 500,
		Status:    valueobject.OrderStatusOpen,
	}
}

func TestOrderService_BuyItem_Success(t *testing.T) {
	repo := new(mockOrderRepo)
	notifier := &recordingNotifier{}
	svc := NewOrderService(repo, notifier)
	ctx := context.Background()

	buyerID := uuid.New()
	sellerID := uuid.New()
	order := testOrder(buyerID, sellerID)

	repo.On("Purchase", ctx, mock.AnythingOfType("string"), order.ListingID, buyerID, int64(500)).Return(order, nil)

	got, err := svc.BuyItem(ctx, buyerID, order.ListingID, 500)
	assert.NoError(t, err)
	assert.Equal(t, order, got)

	// Уведомление о создании заказа получают обе стороны.
	assert.Equal(t, []string{events.KindOrderCreated, events.KindOrderCreated}, notifier.kinds())
	assert.Equal(t, buyerID, notifier.sent[0].accountID)
	assert.Equal(t, sellerID, notifier.sent[1].accountID)
	repo.AssertExpectations(t)
}

func TestOrderService_BuyItem_NegativePayment(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)

	_, err := svc.BuyItem(context.Background(), uuid.New(), ident.NewListingID(), -1)
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Purchase")
}

func TestOrderService_BuyItem_ListingAlreadySold(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	ctx := context.Background()
	buyerID := uuid.New()
	listingID := ident.NewListingID()

	repo.On("Purchase", ctx, mock.AnythingOfType("string"), listingID, buyerID, int64(500)).
		Return(nil, repository.ErrListingNotAvailable)

	_, err := svc.BuyItem(ctx, buyerID, listingID, 500)
	assert.ErrorIs(t, err, apperror.ErrListingAlreadySold)
}

func TestOrderService_BuyItem_InsufficientPayment(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	ctx := context.Background()
	buyerID := uuid.New()
	listingID := ident.NewListingID()

	repo.On("Purchase", ctx, mock.AnythingOfType("string"), listingID, buyerID, int64(100)).
		Return(nil, repository.ErrInsufficientPayment)

	_, err := svc.BuyItem(ctx, buyerID, listingID, 100)
	assert.ErrorIs(t, err, apperror.ErrInsufficientPayment)
}

func TestOrderService_BuyItem_SelfPurchase(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	ctx := context.Background()
	buyerID := uuid.New()
	listingID := ident.NewListingID()

	repo.On("Purchase", ctx, mock.AnythingOfType("string"), listingID, buyerID, int64(500)).
		Return(nil, repository.ErrSelfPurchase)

	_, err := svc.BuyItem(ctx, buyerID, listingID, 500)
	assert.True(t, apperror.IsValidation(err))
}

func TestOrderService_SellerApprove_Pending(t *testing.T) {
	repo := new(mockOrderRepo)
	notifier := &recordingNotifier{}
	svc := NewOrderService(repo, notifier)
	ctx := context.Background()

	buyerID := uuid.New()
	sellerID := uuid.New()
	order := testOrder(buyerID, sellerID)
	order.SellerApproved = true

	repo.On("ApplySignal", ctx, order.ID, sellerID, valueobject.PartySeller, valueobject.SignalApproval, true).
		Return(order, valueobject.OutcomeNone, nil)

	got, err := svc.SellerApprove(ctx, sellerID, order.ID, true)
	assert.NoError(t, err)
	assert.Equal(t, order, got)
	// Одностороннее одобрение не двигает средства и ничего не эмитит.
	assert.Empty(t, notifier.sent)
}

func TestOrderService_BuyerApprove_CompletesOrder(t *testing.T) {
	repo := new(mockOrderRepo)
	notifier := &recordingNotifier{}
	svc := NewOrderService(repo, notifier)
	ctx := context.Background()

	buyerID := uuid.New()
	sellerID := uuid.New()
	order := testOrder(buyerID, sellerID)
	order.BuyerApproved = true
	order.SellerApproved = true
	order.Status = valueobject.OrderStatusCompleted

	repo.On("ApplySignal", ctx, order.ID, buyerID, valueobject.PartyBuyer, valueobject.SignalApproval, true).
		Return(order, valueobject.OutcomeComplete, nil)

	got, err := svc.BuyerApprove(ctx, buyerID, order.ID, true)
	assert.NoError(t, err)
	assert.Equal(t, valueobject.OrderStatusCompleted, got.Status)
	assert.Equal(t, []string{events.KindOrderCompleted, events.KindOrderCompleted}, notifier.kinds())
}

func TestOrderService_SellerCancel_RefundsOrder(t *testing.T) {
	repo := new(mockOrderRepo)
	notifier := &recordingNotifier{}
	svc := NewOrderService(repo, notifier)
	ctx := context.Background()

	buyerID := uuid.New()
	sellerID := uuid.New()
	order := testOrder(buyerID, sellerID)
	order.BuyerCancelRequested = true
	order.SellerCancelRequested = true
	order.Status = valueobject.OrderStatusCancelled

	repo.On("ApplySignal", ctx, order.ID, sellerID, valueobject.PartySeller, valueobject.SignalCancellation, true).
		Return(order, valueobject.OutcomeCancel, nil)

	got, err := svc.SellerCancel(ctx, sellerID, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, valueobject.OrderStatusCancelled, got.Status)
	assert.Equal(t, []string{events.KindOrderCancelled, events.KindOrderCancelled}, notifier.kinds())
}

func TestOrderService_ApplySignal_NotParticipant(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	ctx := context.Background()

	strangerID := uuid.New()
	orderID := ident.NewOrderID()

	repo.On("ApplySignal", ctx, orderID, strangerID, valueobject.PartyBuyer, valueobject.SignalApproval, true).
		Return(nil, valueobject.OutcomeNone, repository.ErrNotParticipant)

	_, err := svc.BuyerApprove(ctx, strangerID, orderID, true)
	assert.True(t, apperror.IsForbidden(err))
}

func TestOrderService_ApplySignal_OrderClosed(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	ctx := context.Background()

	buyerID := uuid.New()
	orderID := ident.NewOrderID()

	repo.On("ApplySignal", ctx, orderID, buyerID, valueobject.PartyBuyer, valueobject.SignalCancellation, true).
		Return(nil, valueobject.OutcomeNone, repository.ErrOrderNotOpen)

	_, err := svc.BuyerCancel(ctx, buyerID, orderID)
	assert.ErrorIs(t, err, apperror.ErrOrderNotOpen)
}

func TestOrderService_GetOrder(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	ctx := context.Background()

	order := testOrder(uuid.New(), uuid.New())
	repo.On("GetByID", ctx, order.ID).Return(order, nil)

	got, err := svc.GetOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	ctx := context.Background()
	orderID := ident.NewOrderID()

	repo.On("GetByID", ctx, orderID).Return(nil, repository.ErrOrderNotFound)

	_, err := svc.GetOrder(ctx, orderID)
	assert.ErrorIs(t, err, apperror.ErrOrderNotFound)
}
