/*
Package event provides the synchronous notification bus used by the diagram core.

A Source[T] is a typed listener list. Listeners run in subscription order on the
goroutine that fires the event; delivery iterates over a snapshot so listeners
may subscribe or unsubscribe while an event is being delivered. A panicking
listener is not recovered and aborts delivery.
*/
package event
