/*
Package observability exposes Prometheus metrics for an editing session.

Metrics are registered on a private registry so that several sessions in one
process do not collide. Counters are fed by subscribing to the transaction,
history and selection events; cache figures are read from the view on scrape.
*/
package observability
