package sync

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/sync"
	"github.com/wmsconnector/backend/internal/domain/wms"
)

// shippingMethodPrefix namespaces the shop's shipping method identifier into
// the carrier code the warehouse expects
const shippingMethodPrefix = "innoship."

// Sentinel status strings of the batch status query
const (
	// StatusCancelled is reported for orders carrying the cancelled marker,
	// without a remote call
	StatusCancelled = "Cancelled"
	// StatusNotApplicable is reported for orders that were never created in
	// the warehouse
	StatusNotApplicable = "not applicable"
)

// OrderStatusResult is one entry of the batch order status query. Err is set
// when the remote lookup for this order failed; other entries are unaffected.
type OrderStatusResult struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status,omitempty"`
	Err     string    `json:"error,omitempty"`
}

// OrderSyncService reconciles shop orders with the warehouse. Each operation
// runs to completion within the triggering request; the idempotency markers
// on the order are the only cross-request guard.
type OrderSyncService struct {
	orders        shop.OrderRepository
	client        wms.Client
	stocks        *StockSyncService
	notices       sync.NoticeStore
	warehouseCode string
	logger        *zap.Logger
}

// NewOrderSyncService creates a new OrderSyncService
func NewOrderSyncService(
	orders shop.OrderRepository,
	client wms.Client,
	stocks *StockSyncService,
	notices sync.NoticeStore,
	warehouseCode string,
	logger *zap.Logger,
) *OrderSyncService {
	return &OrderSyncService{
		orders:        orders,
		client:        client,
		stocks:        stocks,
		notices:       notices,
		warehouseCode: warehouseCode,
		logger:        logger,
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

// CreateOrder creates the order in the warehouse. parcelMachineOverride is a
// request-scoped locker box identifier; the marker persisted on the order
// wins when both are present.
//
// On success the remote identifier is persisted before anything else happens,
// then a best-effort ship confirmation is issued and a full stock pull runs.
// Ship and stock pull failures are logged but never undo the create.
func (s *OrderSyncService) CreateOrder(ctx context.Context, orderID uuid.UUID, parcelMachineOverride string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to load order for WMS create",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
		return err
	}

	if order.IsSyncedToWMS() {
		return shop.ErrOrderAlreadySynced
	}
	if order.ShippingMethod == nil || order.ShippingMethod.ID == "" {
		return sync.ErrMissingShippingMethod
	}

	items := sync.ExpandOrderLines(order.Lines)
	if len(items) == 0 {
		return sync.ErrEmptyOrder
	}

	req := s.buildCreateRequest(order, items, parcelMachineOverride)

	resp, err := s.client.CreateOrder(ctx, req)
	if err != nil {
		s.logger.Error("Failed to create order in WMS",
			zap.String("order_id", orderID.String()),
			zap.String("order_number", order.Number),
			zap.Error(err))
		return err
	}

	remoteID := strconv.FormatInt(resp.ID, 10)
	if err := order.MarkSyncedToWMS(remoteID); err != nil {
		return err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		s.logger.Error("Failed to persist WMS order marker",
			zap.String("order_id", orderID.String()),
			zap.String("wms_order_id", remoteID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Order created in WMS",
		zap.String("order_id", orderID.String()),
		zap.String("order_number", order.Number),
		zap.String("wms_order_id", remoteID))

	if err := s.client.ShipOrder(ctx, remoteID); err != nil {
		// the order is synced once created; shipment confirmation is
		// best-effort
		s.logger.Error("Failed to confirm shipment in WMS",
			zap.String("order_id", orderID.String()),
			zap.String("wms_order_id", remoteID),
			zap.Error(err))
	}

	s.publishNotice(ctx, sync.NoticeLevelSuccess,
		fmt.Sprintf("Order %s created in WMS as %s", order.Number, remoteID))

	if err := s.stocks.PullStocks(ctx); err != nil {
		s.logger.Error("Stock pull after order create failed", zap.Error(err))
	}

	return nil
}

func (s *OrderSyncService) buildCreateRequest(order *shop.Order, items []wms.OrderItem, parcelMachineOverride string) wms.CreateOrderRequest {
	addr := order.ShippingAddress.Trimmed()
	wmsAddr := wms.OrderAddress{
		Zip:       addr.Zip,
		City:      addr.City,
		Email:     addr.Email,
		Line1:     addr.Line1,
		Line2:     addr.Line2,
		Phone:     addr.Phone,
		LastName:  addr.LastName,
		FirstName: addr.FirstName,
		Country:   addr.Country,
	}

	if order.ShippingMethod.IsLocker() {
		boxName := order.ParcelMachineID
		if boxName == "" {
			boxName = parcelMachineOverride
		}
		wmsAddr.BoxName = boxName
	}

	return wms.CreateOrderRequest{
		WarehouseCode:   s.warehouseCode,
		ShippingMethod:  shippingMethodPrefix + strings.ToLower(order.ShippingMethod.ID),
		ShippingAddress: wmsAddr,
		ShippingComment: strings.TrimSpace(order.CustomerNote),
		OrderNumber:     order.Number,
		Items:           items,
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// UpdateOrder replaces the item list of an already created warehouse order,
// then pulls stock.
func (s *OrderSyncService) UpdateOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to load order for WMS update",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
		return err
	}

	if !order.IsSyncedToWMS() {
		return sync.ErrOrderNotSynced
	}

	items := sync.ExpandOrderLines(order.Lines)
	if len(items) == 0 {
		return sync.ErrEmptyOrder
	}

	err = s.client.UpdateOrder(ctx, *order.WMSOrderID, wms.UpdateOrderRequest{
		WarehouseCode: s.warehouseCode,
		Items:         items,
	})
	if err != nil {
		s.logger.Error("Failed to update order in WMS",
			zap.String("order_id", orderID.String()),
			zap.String("wms_order_id", *order.WMSOrderID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Order updated in WMS",
		zap.String("order_id", orderID.String()),
		zap.String("wms_order_id", *order.WMSOrderID))

	if err := s.stocks.PullStocks(ctx); err != nil {
		s.logger.Error("Stock pull after order update failed", zap.Error(err))
	}

	return nil
}

// ---------------------------------------------------------------------------
// Cancel
// ---------------------------------------------------------------------------

// CancelOrder cancels the order in the warehouse. An order already carrying
// the cancelled marker is a no-op success with zero remote calls. An order
// that was never created remotely is a silent success, there is nothing to
// reconcile. After any remote cancel attempt the stock is pulled regardless
// of outcome, since cancellation frees stock and a failed cancel leaves the
// remote state unknown.
func (s *OrderSyncService) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to load order for WMS cancel",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
		return err
	}

	if order.CancelledInWMS {
		return nil
	}
	if !order.IsSyncedToWMS() {
		return nil
	}

	cancelErr := s.client.CancelOrder(ctx, *order.WMSOrderID)
	if cancelErr != nil {
		// the marker stays unset so a later retry is possible
		s.logger.Error("Failed to cancel order in WMS",
			zap.String("order_id", orderID.String()),
			zap.String("wms_order_id", *order.WMSOrderID),
			zap.Error(cancelErr))
		s.publishNotice(ctx, sync.NoticeLevelError,
			fmt.Sprintf("Failed to cancel order %s in WMS: %v", order.Number, cancelErr))
	} else {
		order.MarkCancelledInWMS()
		if err := s.orders.Save(ctx, order); err != nil {
			s.logger.Error("Failed to persist cancelled marker",
				zap.String("order_id", orderID.String()),
				zap.Error(err))
			cancelErr = err
		} else {
			s.logger.Info("Order cancelled in WMS",
				zap.String("order_id", orderID.String()),
				zap.String("wms_order_id", *order.WMSOrderID))
			s.publishNotice(ctx, sync.NoticeLevelSuccess,
				fmt.Sprintf("Order %s cancelled in WMS", order.Number))
		}
	}

	if err := s.stocks.PullStocks(ctx); err != nil {
		s.logger.Error("Stock pull after order cancel failed", zap.Error(err))
	}

	return cancelErr
}

// ---------------------------------------------------------------------------
// Status query
// ---------------------------------------------------------------------------

// OrderStatuses reports the warehouse status of each given order. Failures
// are isolated per entry, one order's remote lookup failure never blocks the
// others.
func (s *OrderSyncService) OrderStatuses(ctx context.Context, orderIDs []uuid.UUID) []OrderStatusResult {
	results := make([]OrderStatusResult, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		results = append(results, s.orderStatus(ctx, orderID))
	}
	return results
}

func (s *OrderSyncService) orderStatus(ctx context.Context, orderID uuid.UUID) OrderStatusResult {
	result := OrderStatusResult{OrderID: orderID}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	if order.CancelledInWMS {
		result.Status = StatusCancelled
		return result
	}
	if !order.IsSyncedToWMS() {
		result.Status = StatusNotApplicable
		return result
	}

	details, err := s.client.GetOrderDetails(ctx, *order.WMSOrderID)
	if err != nil {
		s.logger.Error("Failed to fetch order details from WMS",
			zap.String("order_id", orderID.String()),
			zap.String("wms_order_id", *order.WMSOrderID),
			zap.Error(err))
		result.Err = err.Error()
		return result
	}

	result.Status = normalizeStatus(details.Status)
	return result
}

// normalizeStatus turns a raw warehouse status code like "partially-shipped"
// into a display form like "Partially Shipped"
func normalizeStatus(status string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(status, "-", " "))
}

func (s *OrderSyncService) publishNotice(ctx context.Context, level sync.NoticeLevel, message string) {
	if err := s.notices.Push(ctx, sync.NewNotice(level, message)); err != nil {
		s.logger.Error("Failed to publish notice", zap.Error(err))
	}
}
