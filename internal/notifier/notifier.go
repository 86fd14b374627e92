// Package notifier broadcasts fulfillment requests to connected print
// machines: the whole order after checkout, or a single line item when
// staff request a resend.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"

	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
)

// ItemSource reconstructs order line items for notification payloads.
type ItemSource interface {
	OrderWithItems(ctx context.Context, orderID int64) (*model.Order, error)
}

// AspectSource resolves an item type's aspect-ratio class.
type AspectSource interface {
	GetItemType(ctx context.Context, itemTypeID int64) (*model.ItemType, error)
}

// Notifier formats and broadcasts fulfillment notices.
type Notifier struct {
	registry *Registry
	items    ItemSource
	aspects  AspectSource
	logger   *slog.Logger
}

// New constructs a Notifier owning the given registry.
func New(registry *Registry, items ItemSource, aspects AspectSource, logger *slog.Logger) *Notifier {
	return &Notifier{registry: registry, items: items, aspects: aspects, logger: logger}
}

// Registry exposes connection membership for the websocket endpoint.
func (n *Notifier) Registry() *Registry {
	return n.registry
}

// NotifyAll broadcasts the full item list of an order to every connected
// machine. An empty item list is a caller contract violation: it is logged
// and the broadcast skipped, so one bad call cannot take the broadcaster
// down for everyone else.
func (n *Notifier) NotifyAll(ctx context.Context, orderID int64, items []model.LineItem) {
	if len(items) == 0 {
		n.logger.Error("notify-all called without items", slog.Int64("order_id", orderID))
		return
	}

	payload := make([]model.NoticeItem, 0, len(items))
	for _, item := range items {
		notice, err := n.noticeItem(ctx, item)
		if err != nil {
			n.logger.Error("build notice item failed",
				slog.Int64("order_id", orderID),
				slog.Int64("item_id", item.ID),
				slog.String("error", err.Error()))
			return
		}
		payload = append(payload, notice)
	}

	n.broadcast(model.FulfillmentNotice{
		Event:   model.NoticeEventGenerate,
		OrderID: orderID,
		Items:   payload,
	})
}

// NotifyOne resends the fulfillment notice for a single line item. Fails
// with ErrItemNotFoundInOrder when the (order, item) pair does not resolve;
// nothing is broadcast in that case.
func (n *Notifier) NotifyOne(ctx context.Context, orderID, itemID int64) error {
	order, err := n.items.OrderWithItems(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domainErrors.ErrItemNotFoundInOrder
	}

	item := order.Item(itemID)
	if item == nil {
		return domainErrors.ErrItemNotFoundInOrder
	}

	notice, err := n.noticeItem(ctx, *item)
	if err != nil {
		return err
	}

	n.broadcast(model.FulfillmentNotice{
		Event:   model.NoticeEventResend,
		OrderID: orderID,
		Items:   []model.NoticeItem{notice},
	})
	return nil
}

func (n *Notifier) noticeItem(ctx context.Context, item model.LineItem) (model.NoticeItem, error) {
	itemType, err := n.aspects.GetItemType(ctx, item.ItemTypeID)
	if err != nil {
		return model.NoticeItem{}, err
	}

	images := make([]string, 0, len(item.Images))
	for _, img := range item.Images {
		images = append(images, img.Filepath)
	}

	return model.NoticeItem{
		ItemID:    item.ID,
		Price:     item.Price.StringFixed(2),
		PhotoSize: string(itemType.AspectRatio),
		Hanger:    item.HasHangers,
		Images:    images,
		Printed:   item.Printed(),
	}, nil
}

// broadcast delivers the notice to a snapshot of live connections. Send
// failures are logged per machine; delivery to the rest continues.
func (n *Notifier) broadcast(notice model.FulfillmentNotice) {
	message, err := json.Marshal(notice)
	if err != nil {
		n.logger.Error("marshal fulfillment notice failed", slog.String("error", err.Error()))
		return
	}

	for _, conn := range n.registry.Snapshot() {
		if err := conn.Send(message); err != nil {
			n.logger.Warn("send to machine failed",
				slog.Int64("order_id", notice.OrderID),
				slog.String("error", err.Error()))
		}
	}
}
