package main

import (
	"testing"

	"github.com/streadway/amqp"
)

func TestRetryCountFromHandlesBrokerIntegerWidths(t *testing.T) {
	cases := []struct {
		name    string
		headers amqp.Table
		want    int
	}{
		{"missing", amqp.Table{}, 0},
		{"nil headers", nil, 0},
		{"int", amqp.Table{"x-retry-count": 2}, 2},
		{"int32", amqp.Table{"x-retry-count": int32(1)}, 1},
		{"int64", amqp.Table{"x-retry-count": int64(3)}, 3},
		{"garbage", amqp.Table{"x-retry-count": "two"}, 0},
	}

	for _, tc := range cases {
		if got := retryCountFrom(tc.headers); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestRetryBoundEngages(t *testing.T) {
	// After maxInboundRetries republishes the counter reaches the bound and
	// the message must be dropped instead of requeued again.
	count := retryCountFrom(amqp.Table{"x-retry-count": int32(maxInboundRetries)})
	if count < maxInboundRetries {
		t.Fatalf("expected counter %d to reach the bound %d", count, maxInboundRetries)
	}

	count = retryCountFrom(amqp.Table{"x-retry-count": int32(maxInboundRetries - 1)})
	if count >= maxInboundRetries {
		t.Fatalf("counter %d must still allow a requeue below the bound", count)
	}
}
