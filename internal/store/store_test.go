package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikhila-inturi/cartify/internal/order"
	"github.com/Nikhila-inturi/cartify/internal/store"
)

// fakeGateway scripts gateway responses per call.
type fakeGateway struct {
	listFn   func(ctx context.Context, page, size int) (*order.Page, error)
	getFn    func(ctx context.Context, id string) (*order.Order, error)
	createFn func(ctx context.Context, draft order.Draft) (*order.Order, error)
	updateFn func(ctx context.Context, id string, status order.Status) (*order.Order, error)
	cancelFn func(ctx context.Context, id string) error
}

func (f *fakeGateway) ListOrders(ctx context.Context, page, size int) (*order.Page, error) {
	return f.listFn(ctx, page, size)
}

func (f *fakeGateway) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	return f.getFn(ctx, id)
}

func (f *fakeGateway) CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error) {
	return f.createFn(ctx, draft)
}

func (f *fakeGateway) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	return f.updateFn(ctx, id, status)
}

func (f *fakeGateway) CancelOrder(ctx context.Context, id string) error {
	return f.cancelFn(ctx, id)
}

func sampleOrder(id string, status order.Status) order.Order {
	return order.Order{
		ID:          id,
		OrderNumber: "ORD-" + id,
		CustomerID:  "cust-1",
		Status:      status,
		TotalAmount: 10,
	}
}

func TestFetchSuccess(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 20, size)
			return &order.Page{
				Orders:        []order.Order{sampleOrder("a", order.StatusPending)},
				TotalPages:    5,
				TotalElements: 93,
				PageNumber:    2,
			}, nil
		},
	}
	st := store.New(gw)

	require.NoError(t, st.Fetch(context.Background(), 2, 20))

	state := st.Snapshot()
	assert.False(t, state.Loading)
	assert.Empty(t, state.LastError)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.TotalPages)
	assert.Equal(t, 93, state.TotalElements)
	assert.Equal(t, 2, state.CurrentPage)

	// Refetching the same page is a no-op on the observable state.
	require.NoError(t, st.Fetch(context.Background(), 2, 20))
	assert.Equal(t, state, st.Snapshot())
}

func TestFetchFailureKeepsPreviousPage(t *testing.T) {
	calls := 0
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			calls++
			if calls == 1 {
				return &order.Page{
					Orders:        []order.Order{sampleOrder("a", order.StatusPending)},
					TotalPages:    1,
					TotalElements: 1,
				}, nil
			}
			return nil, errors.New("connection refused")
		},
	}
	st := store.New(gw)

	require.NoError(t, st.Fetch(context.Background(), 0, 20))
	require.Error(t, st.Fetch(context.Background(), 1, 20))

	state := st.Snapshot()
	assert.False(t, state.Loading)
	assert.NotEmpty(t, state.LastError)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "a", state.Items[0].ID)
	assert.Equal(t, 0, state.CurrentPage)
}

func TestFetchEmptyPage(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			return &order.Page{Orders: []order.Order{}, TotalPages: 0, TotalElements: 0}, nil
		},
	}
	st := store.New(gw)

	require.NoError(t, st.Fetch(context.Background(), 0, 20))

	state := st.Snapshot()
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.TotalElements)
	assert.Empty(t, state.LastError)
}

func TestFetchByID(t *testing.T) {
	want := sampleOrder("b", order.StatusConfirmed)
	gw := &fakeGateway{
		getFn: func(ctx context.Context, id string) (*order.Order, error) {
			assert.Equal(t, "b", id)
			clone := want
			return &clone, nil
		},
	}
	st := store.New(gw)

	require.NoError(t, st.FetchByID(context.Background(), "b"))

	state := st.Snapshot()
	require.NotNil(t, state.Selected)
	assert.Equal(t, "b", state.Selected.ID)

	st.ClearSelected()
	assert.Nil(t, st.Snapshot().Selected)
}

func TestCreatePrependsAndCounts(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			return &order.Page{
				Orders:        []order.Order{sampleOrder("old", order.StatusShipped)},
				TotalPages:    1,
				TotalElements: 1,
			}, nil
		},
		createFn: func(ctx context.Context, draft order.Draft) (*order.Order, error) {
			created := sampleOrder("new", order.StatusPending)
			created.TotalAmount = 19.98
			return &created, nil
		},
	}
	st := store.New(gw)
	require.NoError(t, st.Fetch(context.Background(), 0, 20))

	draft := order.Draft{
		CustomerID:      "cust-1",
		CustomerEmail:   "jo@example.com",
		ShippingAddress: "1 Main St",
		Items: []order.DraftLine{
			{ProductID: "p1", ProductName: "Notebook", Quantity: 2, UnitPrice: 9.99},
		},
	}
	require.NoError(t, st.Create(context.Background(), draft))

	state := st.Snapshot()
	require.Len(t, state.Items, 2)
	assert.Equal(t, "new", state.Items[0].ID)
	assert.Equal(t, order.StatusPending, state.Items[0].Status)
	assert.InDelta(t, 19.98, state.Items[0].TotalAmount, 1e-9)
	assert.Equal(t, 2, state.TotalElements)
}

func TestCreateFailureSetsError(t *testing.T) {
	gw := &fakeGateway{
		createFn: func(ctx context.Context, draft order.Draft) (*order.Order, error) {
			return nil, errors.New("customer email is required")
		},
	}
	st := store.New(gw)

	require.Error(t, st.Create(context.Background(), order.Draft{}))

	state := st.Snapshot()
	assert.False(t, state.Loading)
	assert.Contains(t, state.LastError, "customer email")
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.TotalElements)
}

func TestUpdateStatusReplacesItemAndSelected(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			return &order.Page{
				Orders: []order.Order{
					sampleOrder("a", order.StatusPending),
					sampleOrder("b", order.StatusPending),
				},
				TotalPages:    1,
				TotalElements: 2,
			}, nil
		},
		getFn: func(ctx context.Context, id string) (*order.Order, error) {
			o := sampleOrder(id, order.StatusPending)
			return &o, nil
		},
		updateFn: func(ctx context.Context, id string, status order.Status) (*order.Order, error) {
			o := sampleOrder(id, status)
			return &o, nil
		},
	}
	st := store.New(gw)
	require.NoError(t, st.Fetch(context.Background(), 0, 20))
	require.NoError(t, st.FetchByID(context.Background(), "b"))

	require.NoError(t, st.UpdateStatus(context.Background(), "b", order.StatusConfirmed))

	state := st.Snapshot()
	assert.Equal(t, order.StatusPending, state.Items[0].Status)
	assert.Equal(t, order.StatusConfirmed, state.Items[1].Status)
	require.NotNil(t, state.Selected)
	assert.Equal(t, order.StatusConfirmed, state.Selected.Status)
}

func TestUpdateStatusUnknownIDLeavesListAlone(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			return &order.Page{
				Orders:        []order.Order{sampleOrder("a", order.StatusPending)},
				TotalPages:    1,
				TotalElements: 1,
			}, nil
		},
		updateFn: func(ctx context.Context, id string, status order.Status) (*order.Order, error) {
			o := sampleOrder("elsewhere", status)
			return &o, nil
		},
	}
	st := store.New(gw)
	require.NoError(t, st.Fetch(context.Background(), 0, 20))

	require.NoError(t, st.UpdateStatus(context.Background(), "elsewhere", order.StatusConfirmed))

	state := st.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, order.StatusPending, state.Items[0].Status)
}

func TestCancelFlipsStatusInPlace(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			return &order.Page{
				Orders: []order.Order{
					sampleOrder("a", order.StatusPending),
					sampleOrder("b", order.StatusConfirmed),
				},
				TotalPages:    1,
				TotalElements: 2,
			}, nil
		},
		cancelFn: func(ctx context.Context, id string) error { return nil },
	}
	st := store.New(gw)
	require.NoError(t, st.Fetch(context.Background(), 0, 20))
	before := st.Snapshot()

	require.NoError(t, st.Cancel(context.Background(), "b"))

	state := st.Snapshot()
	require.Len(t, state.Items, 2)
	assert.Equal(t, order.StatusCancelled, state.Items[1].Status)
	assert.Equal(t, before.Items[1].OrderNumber, state.Items[1].OrderNumber)
	assert.Equal(t, before.Items[1].TotalAmount, state.Items[1].TotalAmount)
	assert.Equal(t, order.StatusPending, state.Items[0].Status)
	assert.Equal(t, before.TotalElements, state.TotalElements)
}

func TestCancelFailureLeavesStatus(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			return &order.Page{
				Orders:        []order.Order{sampleOrder("a", order.StatusShipped)},
				TotalPages:    1,
				TotalElements: 1,
			}, nil
		},
		cancelFn: func(ctx context.Context, id string) error {
			return errors.New("cannot cancel order in status: SHIPPED")
		},
	}
	st := store.New(gw)
	require.NoError(t, st.Fetch(context.Background(), 0, 20))

	require.Error(t, st.Cancel(context.Background(), "a"))

	state := st.Snapshot()
	assert.Equal(t, order.StatusShipped, state.Items[0].Status)
	assert.Contains(t, state.LastError, "cannot cancel")
}

func TestClearError(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			return nil, errors.New("boom")
		},
	}
	st := store.New(gw)
	require.Error(t, st.Fetch(context.Background(), 0, 20))
	require.NotEmpty(t, st.Snapshot().LastError)

	st.ClearError()
	assert.Empty(t, st.Snapshot().LastError)
}

// Two overlapping fetches may resolve out of order; the one that
// resolves last owns the state.
func TestConcurrentFetchLastWriterWins(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			if page == 0 {
				close(firstStarted)
				<-releaseFirst
			}
			return &order.Page{
				Orders:        []order.Order{sampleOrder("page", order.StatusPending)},
				TotalPages:    3,
				TotalElements: 60,
				PageNumber:    page,
			}, nil
		},
	}
	st := store.New(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = st.Fetch(context.Background(), 0, 20)
	}()

	<-firstStarted
	require.NoError(t, st.Fetch(context.Background(), 1, 20))
	assert.Equal(t, 1, st.Snapshot().CurrentPage)

	close(releaseFirst)
	wg.Wait()

	// The stale request resolved after the fresh one, so page 0 wins.
	assert.Equal(t, 0, st.Snapshot().CurrentPage)
	assert.False(t, st.Snapshot().Loading)
}

func TestSnapshotIsACopy(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(ctx context.Context, page, size int) (*order.Page, error) {
			return &order.Page{
				Orders:        []order.Order{sampleOrder("a", order.StatusPending)},
				TotalPages:    1,
				TotalElements: 1,
			}, nil
		},
		cancelFn: func(ctx context.Context, id string) error { return nil },
	}
	st := store.New(gw)
	require.NoError(t, st.Fetch(context.Background(), 0, 20))

	state := st.Snapshot()
	require.NoError(t, st.Cancel(context.Background(), "a"))

	assert.Equal(t, order.StatusPending, state.Items[0].Status)
	assert.Equal(t, order.StatusCancelled, st.Snapshot().Items[0].Status)
}
