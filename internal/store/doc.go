// Package store defines the persistence interfaces of the card catalog:
// cards and their extension rows, hearts, tag links, printings, the
// curated lists, and the synonym variant tables. It also carries the
// sentinel errors every implementation maps its failures onto, so
// callers never depend on a specific database.
package store
