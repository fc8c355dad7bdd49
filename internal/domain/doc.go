// Package domain contains the core card-catalog entities and their
// validation rules: cards with their kind-specific attribute payloads,
// heart multisets, printings, synonym variants, and the curated catalog
// types. It is independent of any storage or delivery mechanism.
package domain
