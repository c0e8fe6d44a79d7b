package service

import (
	"errors"
	"testing"

	"go-retail-pos/internal/apperr"
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
)

func TestRecordReceivingPartialThenComplete(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Espresso Beans", "12.50", 3)
	order := env.createOrder(t, OrderLine{ProductID: product.ID, QuantityOrdered: 10})

	first, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines:          []ReceivingLine{{ProductID: product.ID, QuantityReceived: 4}},
	}, env.employee.ID, env.employee.FullName)
	if err != nil {
		t.Fatalf("first receiving: %v", err)
	}
	if len(first.Items) != 1 || first.Items[0].QuantityReceived != 4 {
		t.Fatalf("unexpected receiving items: %+v", first.Items)
	}
	if got := env.productStock(t, product); got != 7 {
		t.Fatalf("stock after partial = %d, want 7", got)
	}

	reloaded, err := env.restock.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.Status != model.StatusPartiallyReceived {
		t.Fatalf("order status = %q, want %q", reloaded.Status, model.StatusPartiallyReceived)
	}
	if reloaded.ReceivedDate != nil {
		t.Fatalf("received date set before completion")
	}
	if reloaded.Items[0].QuantityReceived != 4 || reloaded.Items[0].Status != model.StatusPartiallyReceived {
		t.Fatalf("unexpected item state: %+v", reloaded.Items[0])
	}

	if _, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines:          []ReceivingLine{{ProductID: product.ID, QuantityReceived: 6}},
	}, env.employee.ID, env.employee.FullName); err != nil {
		t.Fatalf("second receiving: %v", err)
	}
	if got := env.productStock(t, product); got != 13 {
		t.Fatalf("stock after completion = %d, want 13", got)
	}

	completed, err := env.restock.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("reload completed order: %v", err)
	}
	if completed.Status != model.StatusCompleted {
		t.Fatalf("order status = %q, want %q", completed.Status, model.StatusCompleted)
	}
	if completed.ReceivedDate == nil {
		t.Fatalf("received date not set on completion")
	}
	if completed.Items[0].Status != model.StatusCompleted {
		t.Fatalf("item status = %q, want %q", completed.Items[0].Status, model.StatusCompleted)
	}
}

func TestRecordReceivingCompletedOrderRejected(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Filter Paper", "3.00", 0)
	order := env.createOrder(t, OrderLine{ProductID: product.ID, QuantityOrdered: 5})

	if _, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines:          []ReceivingLine{{ProductID: product.ID, QuantityReceived: 5}},
	}, env.employee.ID, env.employee.FullName); err != nil {
		t.Fatalf("completing receiving: %v", err)
	}

	_, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines:          []ReceivingLine{{ProductID: product.ID, QuantityReceived: 1}},
	}, env.employee.ID, env.employee.FullName)
	var oc *apperr.OrderCompletedError
	if !errors.As(err, &oc) {
		t.Fatalf("err = %v, want OrderCompletedError", err)
	}
	if got := env.productStock(t, product); got != 5 {
		t.Fatalf("stock changed by rejected receiving: %d", got)
	}
	count, err := env.receivings.CountByOrder(order.ID)
	if err != nil {
		t.Fatalf("count receivings: %v", err)
	}
	if count != 1 {
		t.Fatalf("receiving count = %d, want 1", count)
	}
}

// A single invalid line rejects the whole batch, including lines that would
// have been fine on their own.
func TestRecordReceivingOverReceiptRejectsBatch(t *testing.T) {
	env := newTestEnv(t)
	beans := env.createProduct(t, "Beans", "10.00", 0)
	cups := env.createProduct(t, "Cups", "0.50", 0)
	order := env.createOrder(t,
		OrderLine{ProductID: beans.ID, QuantityOrdered: 10},
		OrderLine{ProductID: cups.ID, QuantityOrdered: 5},
	)

	if _, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines:          []ReceivingLine{{ProductID: beans.ID, QuantityReceived: 7}},
	}, env.employee.ID, env.employee.FullName); err != nil {
		t.Fatalf("setup receiving: %v", err)
	}

	_, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines: []ReceivingLine{
			{ProductID: cups.ID, QuantityReceived: 2},
			{ProductID: beans.ID, QuantityReceived: 4}, // 7 + 4 > 10
		},
	}, env.employee.ID, env.employee.FullName)
	var or *apperr.OverReceiptError
	if !errors.As(err, &or) {
		t.Fatalf("err = %v, want OverReceiptError", err)
	}
	if or.AlreadyReceived != 7 || or.Requested != 4 || or.Ordered != 10 {
		t.Fatalf("unexpected over-receipt detail: %+v", or)
	}

	// The valid cups line must not have leaked through.
	if got := env.productStock(t, cups); got != 0 {
		t.Fatalf("cups stock = %d, want 0", got)
	}
	if got := env.productStock(t, beans); got != 7 {
		t.Fatalf("beans stock = %d, want 7", got)
	}
	reloaded, err := env.restock.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	for _, item := range reloaded.Items {
		if item.ProductID == cups.ID && item.QuantityReceived != 0 {
			t.Fatalf("cups item received = %d, want 0", item.QuantityReceived)
		}
	}
	count, err := env.receivings.CountByOrder(order.ID)
	if err != nil {
		t.Fatalf("count receivings: %v", err)
	}
	if count != 1 {
		t.Fatalf("receiving count = %d, want 1", count)
	}
}

// Duplicate lines for one product count against the cap combined.
func TestRecordReceivingDuplicateLinesSummed(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Syrup", "6.00", 0)
	order := env.createOrder(t, OrderLine{ProductID: product.ID, QuantityOrdered: 10})

	_, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines: []ReceivingLine{
			{ProductID: product.ID, QuantityReceived: 6},
			{ProductID: product.ID, QuantityReceived: 6},
		},
	}, env.employee.ID, env.employee.FullName)
	var or *apperr.OverReceiptError
	if !errors.As(err, &or) {
		t.Fatalf("err = %v, want OverReceiptError", err)
	}

	rec, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines: []ReceivingLine{
			{ProductID: product.ID, QuantityReceived: 4},
			{ProductID: product.ID, QuantityReceived: 4},
		},
	}, env.employee.ID, env.employee.FullName)
	if err != nil {
		t.Fatalf("split receiving: %v", err)
	}
	if len(rec.Items) != 2 {
		t.Fatalf("audit items = %d, want both lines recorded", len(rec.Items))
	}
	if got := env.productStock(t, product); got != 8 {
		t.Fatalf("stock = %d, want 8", got)
	}
	reloaded, err := env.restock.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.Items[0].QuantityReceived != 8 {
		t.Fatalf("item received = %d, want 8", reloaded.Items[0].QuantityReceived)
	}
}

func TestRecordReceivingUnknownProductAndOrder(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Mugs", "4.00", 0)
	stranger := env.createProduct(t, "Napkins", "1.00", 0)
	order := env.createOrder(t, OrderLine{ProductID: product.ID, QuantityOrdered: 3})

	_, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines:          []ReceivingLine{{ProductID: stranger.ID, QuantityReceived: 1}},
	}, env.employee.ID, env.employee.FullName)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError for product outside the order", err)
	}

	_, err = env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: uuid.New(),
		Lines:          []ReceivingLine{{ProductID: product.ID, QuantityReceived: 1}},
	}, env.employee.ID, env.employee.FullName)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

// The counter update re-checks the cap against the stored row, so a caller
// holding a stale copy of the item cannot push the total past the ordered
// quantity even though its own snapshot would have passed the batch check.
func TestReceivedCounterIncrementEnforcesCap(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Tonic", "2.00", 0)
	order := env.createOrder(t, OrderLine{ProductID: product.ID, QuantityOrdered: 10})
	stale := order.Items[0] // snapshot taken before the row advances

	// Another receiving advances the stored counter to 7.
	if _, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Lines:          []ReceivingLine{{ProductID: product.ID, QuantityReceived: 7}},
	}, env.employee.ID, env.employee.FullName); err != nil {
		t.Fatalf("first receiving: %v", err)
	}

	// Against the stale snapshot 0+7 <= 10 holds; against the row it must not.
	rows, err := env.orders.IncrementReceived(env.db, stale.ID, 7)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if rows != 0 {
		t.Fatalf("increment past the cap touched %d rows", rows)
	}
	item, err := env.orders.FindItemTx(env.db, stale.ID)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if item.QuantityReceived != 7 {
		t.Fatalf("counter = %d, want 7", item.QuantityReceived)
	}

	// The exact remainder still fits.
	rows, err = env.orders.IncrementReceived(env.db, stale.ID, 3)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if rows != 1 {
		t.Fatalf("valid increment touched %d rows", rows)
	}
	item, err = env.orders.FindItemTx(env.db, stale.ID)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if item.QuantityReceived != 10 {
		t.Fatalf("counter = %d, want 10", item.QuantityReceived)
	}
}

func TestReceivingStatusLabelRecordedOnly(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Lids", "0.20", 0)
	order := env.createOrder(t, OrderLine{ProductID: product.ID, QuantityOrdered: 4})

	rec, err := env.receiving.RecordReceiving(&RecordReceivingRequest{
		RestockOrderID: order.ID,
		Status:         "Completed",
		Lines:          []ReceivingLine{{ProductID: product.ID, QuantityReceived: 1}},
	}, env.employee.ID, env.employee.FullName)
	if err != nil {
		t.Fatalf("receiving: %v", err)
	}
	if rec.Status != "Completed" {
		t.Fatalf("label = %q, want the submitted label kept verbatim", rec.Status)
	}

	// The label has no bearing on the derived order state.
	reloaded, err := env.restock.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.Status != model.StatusPartiallyReceived {
		t.Fatalf("order status = %q, want %q", reloaded.Status, model.StatusPartiallyReceived)
	}
}
