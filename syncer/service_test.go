package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseSince(t *testing.T) {
	assert.True(t, parseSince("1700000000000").Equal(time.UnixMilli(1700000000000)))
	assert.True(t, parseSince("0").Equal(time.UnixMilli(0)))
	assert.True(t, parseSince("").Equal(time.UnixMilli(0)))
	assert.True(t, parseSince("yesterday").Equal(time.UnixMilli(0)))
}

func TestPullFansOutAcrossEntities(t *testing.T) {
	orders := &mockStore{}
	products := &mockStore{}
	svc := testService(map[string]*mockStore{"orders": orders, "products": products})

	since := time.UnixMilli(1700000000000)
	orders.On("FindChangedSince", mock.Anything, since).Return([]any{OrderRow{Id: "o1"}}, nil)
	products.On("FindChangedSince", mock.Anything, since).Return([]any{ProductRow{Id: "p1"}, ProductRow{Id: "p2"}}, nil)

	before := time.Now().UnixMilli()
	resp := svc.Pull(context.Background(), "1700000000000")
	after := time.Now().UnixMilli()

	require.Len(t, resp.Changes, 2)
	assert.Len(t, resp.Changes["orders"].Created, 1)
	assert.Len(t, resp.Changes["products"].Created, 2)
	assert.GreaterOrEqual(t, resp.Timestamp, before)
	assert.LessOrEqual(t, resp.Timestamp, after)
}

func TestPullDegradesFailingEntityToEmptyBucket(t *testing.T) {
	orders := &mockStore{}
	products := &mockStore{}
	svc := testService(map[string]*mockStore{"orders": orders, "products": products})

	orders.On("FindChangedSince", mock.Anything, mock.Anything).Return(nil, errors.New("Table 'possync.orders' doesn't exist"))
	products.On("FindChangedSince", mock.Anything, mock.Anything).Return([]any{ProductRow{Id: "p1"}}, nil)

	resp := svc.Pull(context.Background(), "0")

	bucket, ok := resp.Changes["orders"]
	require.True(t, ok, "failing entity still reports a bucket")
	assert.Empty(t, bucket.Created)
	assert.NotNil(t, bucket.Created, "empty bucket marshals as [], not null")
	assert.Empty(t, bucket.Updated)
	assert.Empty(t, bucket.Deleted)
	assert.Len(t, resp.Changes["products"].Created, 1)
}

func TestPullEmptyStoreShape(t *testing.T) {
	orders := &mockStore{}
	products := &mockStore{}
	svc := testService(map[string]*mockStore{"orders": orders, "products": products})

	orders.On("FindChangedSince", mock.Anything, time.UnixMilli(0)).Return([]any{}, nil)
	products.On("FindChangedSince", mock.Anything, time.UnixMilli(0)).Return([]any{}, nil)

	resp := svc.Pull(context.Background(), "0")

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	changes := decoded["changes"].(map[string]any)
	for _, name := range []string{"orders", "products"} {
		bucket := changes[name].(map[string]any)
		assert.Equal(t, []any{}, bucket["created"], "%s created", name)
		assert.Equal(t, []any{}, bucket["updated"], "%s updated", name)
		assert.Equal(t, []any{}, bucket["deleted"], "%s deleted", name)
	}
	assert.NotZero(t, decoded["timestamp"])
}

func TestPushProcessesOrdersBeforeProducts(t *testing.T) {
	orders := &mockStore{}
	products := &mockStore{}
	svc := testService(map[string]*mockStore{"orders": orders, "products": products})

	var calls []string
	orders.On("Upsert", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		calls = append(calls, "orders")
	}).Return(nil)
	products.On("Upsert", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		calls = append(calls, "products")
	}).Return(nil)

	req := PushRequest{
		"products": {Created: []json.RawMessage{[]byte(`{"id": "p1"}`)}},
		"orders":   {Created: []json.RawMessage{[]byte(`{"id": "o1"}`)}},
	}
	require.NoError(t, svc.Push(context.Background(), req, "0"))
	assert.Equal(t, []string{"orders", "products"}, calls)
}

func TestPushRejectsUnknownEntityWithoutApplyingAnything(t *testing.T) {
	orders := &mockStore{}
	products := &mockStore{}
	svc := testService(map[string]*mockStore{"orders": orders, "products": products})

	req := PushRequest{
		"orders":    {Created: []json.RawMessage{orderRaw("o1")}},
		"customers": {Created: []json.RawMessage{[]byte(`{"id": "c1"}`)}},
	}
	err := svc.Push(context.Background(), req, "0")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEntityNotSupported)
	assert.Contains(t, err.Error(), "customers")
	orders.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestPushErrorStopsLaterEntities(t *testing.T) {
	orders := &mockStore{}
	products := &mockStore{}
	svc := testService(map[string]*mockStore{"orders": orders, "products": products})

	boom := errors.New("write failed")
	orders.On("Upsert", mock.Anything, mock.Anything).Return(boom)

	req := PushRequest{
		"orders":   {Created: []json.RawMessage{orderRaw("o1")}},
		"products": {Created: []json.RawMessage{[]byte(`{"id": "p1"}`)}},
	}
	err := svc.Push(context.Background(), req, "0")

	require.ErrorIs(t, err, boom)
	products.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
