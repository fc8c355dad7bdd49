// Package api handles the catalog's HTTP surface: card entry and
// retrieval, the curated-list admin endpoints, and the synonym and
// rarity tables. Handlers validate request payloads, translate them to
// service calls, and map internal errors to safe HTTP responses.
package api
