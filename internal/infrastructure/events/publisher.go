package events

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/lending"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// 事件路由键
const (
	RoutingKeyCheckedIn  = "book.checked_in"
	RoutingKeyCheckedOut = "book.checked_out"
	RoutingKeyDeleted    = "book.deleted"
)

// LendingEvent 借阅事件载荷
type LendingEvent struct {
	BookID     uint      `json:"book_id"`
	UserID     uint      `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher 借阅事件发布者
// 设计说明:
// 1. 实现lending.EventPublisher,在事务提交后被调用
// 2. 发布动作包在熔断器里:Broker宕机时连续失败触发熔断,
//    后续请求快速失败,不会拖慢借还接口
// 3. 尽力而为语义:发布失败只记日志和指标,不向调用方返回错误
type Publisher struct {
	publisher *mq.Publisher
	breaker   *circuitbreaker.CircuitBreaker
}

// NewPublisher 创建借阅事件发布者
func NewPublisher(publisher *mq.Publisher) *Publisher {
	cb := circuitbreaker.NewCircuitBreaker("event-publisher", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("⚡ 熔断器状态变化: %s %s → %s", name, from, to)
		if metrics.CircuitBreakerState != nil {
			metrics.SetGaugeVec(metrics.CircuitBreakerState,
				map[string]string{"name": name}, float64(to))
		}
	})

	return &Publisher{
		publisher: publisher,
		breaker:   cb,
	}
}

// PublishBookCheckedIn 发布借书事件
func (p *Publisher) PublishBookCheckedIn(ctx context.Context, bookID, userID uint) {
	p.publish(ctx, RoutingKeyCheckedIn, LendingEvent{
		BookID:     bookID,
		UserID:     userID,
		OccurredAt: time.Now(),
	})
}

// PublishBookCheckedOut 发布还书事件
func (p *Publisher) PublishBookCheckedOut(ctx context.Context, bookID, userID uint) {
	p.publish(ctx, RoutingKeyCheckedOut, LendingEvent{
		BookID:     bookID,
		UserID:     userID,
		OccurredAt: time.Now(),
	})
}

// PublishBookDeleted 发布删书事件
func (p *Publisher) PublishBookDeleted(ctx context.Context, bookID uint) {
	p.publish(ctx, RoutingKeyDeleted, LendingEvent{
		BookID:     bookID,
		OccurredAt: time.Now(),
	})
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event LendingEvent) {
	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(ctx, routingKey, event)
	})

	if err != nil {
		// 尽力而为:丢弃并记录,业务结果不受影响
		log.Printf("⚠️ 事件发布失败(已丢弃): key=%s, err=%v", routingKey, err)
		if metrics.MessagesDroppedTotal != nil {
			metrics.IncCounterVec(metrics.MessagesDroppedTotal,
				map[string]string{"routing_key": routingKey})
		}
		return
	}

	if metrics.MessagesPublishedTotal != nil {
		metrics.IncCounterVec(metrics.MessagesPublishedTotal,
			map[string]string{"exchange": "library.events", "routing_key": routingKey})
	}
}

// NoopPublisher 空实现
// mq.enabled=false时注入,借还事件静默丢弃
type NoopPublisher struct{}

// NewNoopPublisher 创建空发布者
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) PublishBookCheckedIn(ctx context.Context, bookID, userID uint)  {}
func (NoopPublisher) PublishBookCheckedOut(ctx context.Context, bookID, userID uint) {}
func (NoopPublisher) PublishBookDeleted(ctx context.Context, bookID uint)            {}

// 编译期接口断言
var (
	_ lending.EventPublisher = (*Publisher)(nil)
	_ lending.EventPublisher = NoopPublisher{}
)
