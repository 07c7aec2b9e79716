// Package ecs bridges shapeshifter notifications into a [Donburi] world.
//
// [NewDonburiNotifier] returns a [shapeshifter.Notifier] that publishes each
// notification as a typed Donburi event. Shells subscribe to
// [NotificationEventType] and drain the queue once per frame:
//
//	world := donburi.NewWorld()
//	ecs.NotificationEventType.Subscribe(world, onNotify)
//	game := invaders.New(cfg, scene, ecs.NewDonburiNotifier(world), rng)
//
//	// after scene.Step
//	ecs.NotificationEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
