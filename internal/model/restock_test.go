package model

import "testing"

func TestOrderItemDeriveStatus(t *testing.T) {
	cases := []struct {
		ordered, received int
		want              OrderStatus
	}{
		{10, 0, StatusPending},
		{10, 1, StatusPartiallyReceived},
		{10, 9, StatusPartiallyReceived},
		{10, 10, StatusCompleted},
	}
	for _, tc := range cases {
		item := OrderItem{QuantityOrdered: tc.ordered, QuantityReceived: tc.received}
		if got := item.DeriveStatus(); got != tc.want {
			t.Errorf("DeriveStatus(%d/%d) = %q, want %q", tc.received, tc.ordered, got, tc.want)
		}
	}
}

func TestRestockOrderDeriveStatus(t *testing.T) {
	order := RestockOrder{Items: []OrderItem{
		{QuantityOrdered: 5, QuantityReceived: 0},
		{QuantityOrdered: 3, QuantityReceived: 0},
	}}
	if got := order.DeriveStatus(); got != StatusPending {
		t.Fatalf("fresh order = %q, want %q", got, StatusPending)
	}

	order.Items[0].QuantityReceived = 5
	if got := order.DeriveStatus(); got != StatusPartiallyReceived {
		t.Fatalf("one item done = %q, want %q", got, StatusPartiallyReceived)
	}

	order.Items[1].QuantityReceived = 3
	if got := order.DeriveStatus(); got != StatusCompleted {
		t.Fatalf("all items done = %q, want %q", got, StatusCompleted)
	}

	empty := RestockOrder{}
	if got := empty.DeriveStatus(); got != StatusPending {
		t.Fatalf("empty order = %q, want %q", got, StatusPending)
	}
}
