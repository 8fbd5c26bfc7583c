package event

import (
	"testing"
)

// TestNewBus 测试创建新的事件总线
func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() 返回 nil")
	}
	if bus.handlers == nil {
		t.Fatal("NewBus() handlers map 未初始化")
	}
}

func TestSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var received any
	bus.Subscribe(EventJumped, func(event any) {
		received = event
	})

	evt := JumpedEvent{Impulse: 20}
	bus.Publish(EventJumped, evt)

	if received != evt {
		t.Errorf("handler 收到 %v, 期望 %v", received, evt)
	}
}

func TestPublishNoSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish("nonexistent", "data")
}

func TestMultipleSubscribersInOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		bus.Subscribe(EventLanded, func(event any) {
			order = append(order, i)
		})
	}

	bus.Publish(EventLanded, LandedEvent{})

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("调用顺序 = %v, 期望 [0 1 2]", order)
	}
}

func TestMultipleEvents(t *testing.T) {
	bus := NewBus()
	var jumped, landed bool

	bus.Subscribe(EventJumped, func(event any) { jumped = true })
	bus.Subscribe(EventLanded, func(event any) { landed = true })

	bus.Publish(EventJumped, JumpedEvent{})

	if !jumped {
		t.Error("jumped handler 应该被调用")
	}
	if landed {
		t.Error("landed handler 不应该被调用")
	}
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Subscribe(EventInteract, func(event any) { panic("boom") })
	bus.Subscribe(EventInteract, func(event any) { called = true })

	bus.Publish(EventInteract, InteractEvent{})

	if !called {
		t.Error("panic 之后的 handler 应该继续执行")
	}
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *Bus
	bus.Subscribe(EventJumped, func(any) {})
	bus.Publish(EventJumped, nil)
}
