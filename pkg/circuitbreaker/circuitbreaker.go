// Package circuitbreaker 为外部HTTP调用提供熔断保护
//
// 状态转换：
//
//	CLOSED --连续失败达到阈值--> OPEN --超时--> HALF_OPEN --探测成功--> CLOSED
//	                                              \--探测失败--> OPEN
//
// OPEN状态下请求直接返回ErrOpenState，不再等待下游超时。
// 熔断器只负责快速失败，不做重试。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	// MaxFailures 连续失败多少次后打开熔断器，0表示不启用熔断
	MaxFailures uint32
	// Timeout OPEN状态持续时间，过后转为HALF_OPEN
	Timeout time.Duration
	// MaxRequests 半开状态下允许通过的探测请求数
	MaxRequests uint32
	// IsFailure 判断一次调用是否计为失败，默认err != nil即失败
	IsFailure func(err error) bool
	// OnStateChange 状态变化回调（记录日志、更新指标）
	OnStateChange func(name string, from, to State)
}

// Counts 统计数据
type Counts struct {
	Requests            uint32
	ConsecutiveFailures uint32
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name string
	cfg  Config
	now  func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64
	counts     Counts
	expiry     time.Time
}

// New 创建熔断器
//
//	cb := circuitbreaker.New("openlibrary", circuitbreaker.Config{
//	    MaxFailures: 5,
//	    Timeout:     30 * time.Second,
//	    MaxRequests: 1,
//	})
func New(name string, cfg Config) *CircuitBreaker {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return err != nil }
	}
	return &CircuitBreaker{
		name:  name,
		cfg:   cfg,
		now:   time.Now,
		state: StateClosed,
	}
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// Execute 在熔断保护下执行req
// 熔断器打开时不会调用req，直接返回ErrOpenState
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	err = req()
	cb.afterRequest(generation, !cb.cfg.IsFailure(err))
	return err
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(cb.now())
	return state
}

// Counts 当前统计数据
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(cb.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && cb.counts.Requests >= cb.cfg.MaxRequests:
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	state, generation := cb.currentState(now)
	// 状态已切换，本次结果属于旧周期，忽略
	if generation != before {
		return
	}

	if success {
		cb.counts.ConsecutiveFailures = 0
		if state == StateHalfOpen {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.ConsecutiveFailures++
	switch state {
	case StateClosed:
		if cb.cfg.MaxFailures > 0 && cb.counts.ConsecutiveFailures >= cb.cfg.MaxFailures {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	if cb.state == StateOpen && !cb.expiry.After(now) {
		cb.setState(StateHalfOpen, now)
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts = Counts{}

	if state == StateOpen {
		cb.expiry = now.Add(cb.cfg.Timeout)
	} else {
		cb.expiry = time.Time{}
	}

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.name, prev, state)
	}
}
