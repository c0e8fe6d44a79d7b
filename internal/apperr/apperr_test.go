package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), 400},
		{NotFound("product", "abc"), 404},
		{&OrderCompletedError{OrderID: "o1"}, 409},
		{&OverReceiptError{ProductID: "p1", Requested: 5, Ordered: 3}, 409},
		{&InsufficientStockError{ProductID: "p1", Available: 1, Requested: 2}, 409},
		{&OrderHasReceivingsError{OrderID: "o1"}, 409},
		{Transaction("save", errors.New("disk full")), 500},
		// A commit-time failure stays 500 even when its cause is typed.
		{Transaction("save", NotFound("product", "p9")), 500},
		{errors.New("plain"), 500},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestIsDomain(t *testing.T) {
	if !IsDomain(NotFound("sale", "s1")) {
		t.Fatalf("NotFound not recognized as domain error")
	}
	// Wrapping keeps the classification.
	if !IsDomain(fmt.Errorf("context: %w", &OverReceiptError{ProductID: "p1"})) {
		t.Fatalf("wrapped domain error not recognized")
	}
	if IsDomain(Transaction("commit", errors.New("boom"))) {
		t.Fatalf("transaction failure classified as domain error")
	}
	if IsDomain(Transaction("commit", NotFound("sale", "s2"))) {
		t.Fatalf("business error wrapped at commit time classified as domain error")
	}
	if IsDomain(errors.New("plain")) {
		t.Fatalf("plain error classified as domain error")
	}
}

func TestTransactionErrorUnwrap(t *testing.T) {
	cause := errors.New("constraint violated")
	err := Transaction("create sale", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause not reachable through Unwrap")
	}
}
