package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
)

type MockCall struct {
	Method string
	Args   []interface{}
}

// MockHoldingReader is a mock implementation of sources.HoldingReader
type MockHoldingReader struct {
	mu sync.Mutex

	// Function hook for custom behavior
	ReadHoldingFunc func(ctx context.Context, owner, mint string) (*entities.Holding, error)

	// Call tracking
	Calls []MockCall
}

func NewMockHoldingReader() *MockHoldingReader {
	return &MockHoldingReader{Calls: make([]MockCall, 0)}
}

func (m *MockHoldingReader) ReadHolding(ctx context.Context, owner, mint string) (*entities.Holding, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "ReadHolding", Args: []interface{}{owner, mint}})
	m.mu.Unlock()

	if m.ReadHoldingFunc != nil {
		return m.ReadHoldingFunc(ctx, owner, mint)
	}
	return CreateTestHolding(), nil
}

// CallCount returns the number of recorded calls
func (m *MockHoldingReader) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockPairSource is a mock implementation of sources.PairSource. Without
// hooks it serves Body.
type MockPairSource struct {
	mu sync.Mutex

	Body []byte

	FetchPairsRawFunc func(ctx context.Context, mint string) ([]byte, error)
	FetchPairsFunc    func(ctx context.Context, mint string) ([]entities.MarketPair, error)

	Calls []MockCall
}

func NewMockPairSource() *MockPairSource {
	return &MockPairSource{
		Body:  []byte(PairsBody),
		Calls: make([]MockCall, 0),
	}
}

func (m *MockPairSource) FetchPairsRaw(ctx context.Context, mint string) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "FetchPairsRaw", Args: []interface{}{mint}})
	m.mu.Unlock()

	if m.FetchPairsRawFunc != nil {
		return m.FetchPairsRawFunc(ctx, mint)
	}
	return m.Body, nil
}

func (m *MockPairSource) FetchPairs(ctx context.Context, mint string) ([]entities.MarketPair, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "FetchPairs", Args: []interface{}{mint}})
	m.mu.Unlock()

	if m.FetchPairsFunc != nil {
		return m.FetchPairsFunc(ctx, mint)
	}
	return DefaultPairs(), nil
}

// CallCount returns the number of recorded calls
func (m *MockPairSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockPnlSource is a mock implementation of sources.PnlSource. Without
// hooks it serves Body.
type MockPnlSource struct {
	mu sync.Mutex

	Body []byte

	FetchPnlRawFunc func(ctx context.Context, wallet string) ([]byte, error)
	FetchPnlFunc    func(ctx context.Context, wallet string) (*entities.WalletPnl, error)

	Calls []MockCall
}

func NewMockPnlSource() *MockPnlSource {
	return &MockPnlSource{
		Body:  []byte(PnlBody),
		Calls: make([]MockCall, 0),
	}
}

func (m *MockPnlSource) FetchPnlRaw(ctx context.Context, wallet string) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "FetchPnlRaw", Args: []interface{}{wallet}})
	m.mu.Unlock()

	if m.FetchPnlRawFunc != nil {
		return m.FetchPnlRawFunc(ctx, wallet)
	}
	return m.Body, nil
}

func (m *MockPnlSource) FetchPnl(ctx context.Context, wallet string) (*entities.WalletPnl, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "FetchPnl", Args: []interface{}{wallet}})
	m.mu.Unlock()

	if m.FetchPnlFunc != nil {
		return m.FetchPnlFunc(ctx, wallet)
	}
	return CreateTestPnl(), nil
}

// CallCount returns the number of recorded calls
func (m *MockPnlSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	mu sync.RWMutex

	Healthy bool
	Error   error
	Calls   []MockCall
}

func NewMockHealthChecker(healthy bool) *MockHealthChecker {
	var err error
	if !healthy {
		err = errors.New("health check failed")
	}
	return &MockHealthChecker{
		Healthy: healthy,
		Error:   err,
		Calls:   make([]MockCall, 0),
	}
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "HealthCheck", Args: nil})
	m.mu.Unlock()

	return m.Error
}

func (m *MockHealthChecker) SetHealthy(healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Healthy = healthy
	if healthy {
		m.Error = nil
	} else {
		m.Error = errors.New("health check failed")
	}
}
