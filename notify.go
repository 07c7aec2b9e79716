package shapeshifter

// Notification is an abstract message a simulation raises toward its shell.
type Notification uint8

const (
	NotifyQuit     Notification = iota // leave the round and return to the menu
	NotifyGameOver                     // the last life was lost
)

// String returns the notification name.
func (n Notification) String() string {
	switch n {
	case NotifyQuit:
		return "quit"
	case NotifyGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Notifier receives notifications from a simulation. The ecs package bridges
// them into a Donburi world.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}
