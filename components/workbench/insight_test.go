package workbench

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInsightClient struct {
	mu    sync.Mutex
	calls int
	reqs  []InsightRequest
	text  string
	err   error
	block chan struct{}
}

func (c *stubInsightClient) Generate(ctx context.Context, req InsightRequest) (string, error) {
	c.mu.Lock()
	c.calls++
	c.reqs = append(c.reqs, req)
	block := c.block
	c.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return c.text, c.err
}

func (c *stubInsightClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func insightTable(rows int) VirtualTable {
	vt := VirtualTable{ID: "vt1", Name: "Sales", Fields: []string{"amount"}}
	for i := 0; i < rows; i++ {
		vt.Data = append(vt.Data, Row{"amount": Number(float64(i))})
	}
	return vt
}

func TestRequestDeliversResult(t *testing.T) {
	client := &stubInsightClient{text: "Revenue is concentrated in the North region."}
	session := NewInsightSession(client, LocaleEN, time.Second)
	defer session.Close()

	results := make(chan InsightResult, 1)
	err := session.Request(context.Background(), insightTable(3), "Revenue", func(r InsightResult) {
		results <- r
	})
	require.NoError(t, err)

	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.Equal(t, client.text, r.Text)
	case <-time.After(time.Second):
		t.Fatal("result was never delivered")
	}
}

func TestRequestCapsRowSampleAndCarriesLanguage(t *testing.T) {
	client := &stubInsightClient{text: "ok"}
	session := NewInsightSession(client, LocaleZH, time.Second)
	defer session.Close()

	results := make(chan InsightResult, 1)
	err := session.Request(context.Background(), insightTable(50), "Big", func(r InsightResult) {
		results <- r
	})
	require.NoError(t, err)
	<-results

	client.mu.Lock()
	defer client.mu.Unlock()
	require.Len(t, client.reqs, 1)
	assert.Len(t, client.reqs[0].Rows, InsightRowLimit)
	assert.Equal(t, "Big", client.reqs[0].Title)
	assert.Equal(t, LocaleZH, client.reqs[0].Language)
}

func TestRequestEmptyTableNeverCallsClient(t *testing.T) {
	client := &stubInsightClient{}
	session := NewInsightSession(client, LocaleEN, time.Second)
	defer session.Close()

	err := session.Request(context.Background(), VirtualTable{ID: "vt1"}, "Empty", func(InsightResult) {
		t.Fatal("deliver must not run")
	})
	require.ErrorIs(t, err, ErrNoData)
	assert.Zero(t, client.callCount())
}

func TestRequestRejectsSecondPendingCall(t *testing.T) {
	client := &stubInsightClient{block: make(chan struct{})}
	session := NewInsightSession(client, LocaleEN, time.Second)
	defer session.Close()

	done := make(chan InsightResult, 1)
	require.NoError(t, session.Request(context.Background(), insightTable(2), "A", func(r InsightResult) {
		done <- r
	}))
	err := session.Request(context.Background(), insightTable(2), "B", func(InsightResult) {})
	require.Error(t, err)

	close(client.block)
	<-done
}

func TestCloseDiscardsLateResult(t *testing.T) {
	client := &stubInsightClient{block: make(chan struct{}), text: "late"}
	session := NewInsightSession(client, LocaleEN, time.Second)

	delivered := make(chan struct{})
	require.NoError(t, session.Request(context.Background(), insightTable(2), "Slow", func(InsightResult) {
		close(delivered)
	}))

	session.Close()
	close(client.block)

	select {
	case <-delivered:
		t.Fatal("result delivered after Close")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCloseWaitsForInFlightDelivery(t *testing.T) {
	client := &stubInsightClient{text: "done"}
	session := NewInsightSession(client, LocaleEN, time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, session.Request(context.Background(), insightTable(2), "Busy", func(InsightResult) {
		close(started)
		<-release
	}))
	<-started

	closed := make(chan struct{})
	go func() {
		session.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while the callback was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close never returned")
	}
}

func TestRequestTimesOutStalledClient(t *testing.T) {
	client := &stubInsightClient{block: make(chan struct{})}
	session := NewInsightSession(client, LocaleEN, 20*time.Millisecond)
	defer session.Close()

	results := make(chan InsightResult, 1)
	require.NoError(t, session.Request(context.Background(), insightTable(2), "Stalled", func(r InsightResult) {
		results <- r
	}))

	select {
	case r := <-results:
		require.Error(t, r.Err)
		assert.True(t, errors.Is(r.Err, context.DeadlineExceeded))
	case <-time.After(time.Second):
		t.Fatal("timeout never fired")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	session := NewInsightSession(&stubInsightClient{}, LocaleEN, 0)
	session.Close()
	session.Close()

	err := session.Request(context.Background(), insightTable(1), "x", func(InsightResult) {})
	require.Error(t, err)
}
