package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/bjorn2code64/shapeshifter"
)

// NotificationEventType is the Donburi event type notifications are
// published under. Events queue until ProcessEvents is called.
var NotificationEventType = events.NewEventType[shapeshifter.Notification]()

type donburiNotifier struct {
	world donburi.World
}

// NewDonburiNotifier creates a Notifier that publishes to world.
func NewDonburiNotifier(world donburi.World) shapeshifter.Notifier {
	return &donburiNotifier{world: world}
}

func (n *donburiNotifier) Notify(note shapeshifter.Notification) {
	NotificationEventType.Publish(n.world, note)
}

// OnNotification subscribes fn to notifications of kind want only.
func OnNotification(world donburi.World, want shapeshifter.Notification, fn func()) {
	NotificationEventType.Subscribe(world, func(_ donburi.World, got shapeshifter.Notification) {
		if got == want {
			fn()
		}
	})
}
