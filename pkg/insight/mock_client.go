package insight

import (
	"context"
	"fmt"
	"strings"
	"sync"

	workbench "github.com/insightpro/go-workbench/components/workbench"
)

// MockClient produces deterministic analysis text for tests and local demos.
// It summarizes the sampled rows instead of calling a remote service.
type MockClient struct {
	mu    sync.Mutex
	calls int
	Err   error
}

// NewMockClient builds a mock generation client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

var _ workbench.InsightClient = (*MockClient)(nil)

// Generate returns a canned summary of the request.
func (c *MockClient) Generate(_ context.Context, req workbench.InsightRequest) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.Err != nil {
		return "", c.Err
	}
	var b strings.Builder
	if strings.HasPrefix(req.Language, "zh") {
		fmt.Fprintf(&b, "对“%s”的 %d 行样本数据进行了分析。", req.Title, len(req.Rows))
		b.WriteString("数据分布总体平稳，建议结合渠道维度进一步拆分。")
	} else {
		fmt.Fprintf(&b, "Analyzed a sample of %d rows for %q. ", len(req.Rows), req.Title)
		b.WriteString("The distribution looks stable; consider segmenting by channel for deeper trends.")
	}
	return b.String(), nil
}

// Calls reports how many generations were requested.
func (c *MockClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
