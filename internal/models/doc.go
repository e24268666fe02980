// Package models defines the value types passed between the curation,
// catalog, and fulfillment layers.
//
// All types here are plain values copied between stages; the only long-lived
// mutable state in the application is the catalog client's auth session,
// which lives in the services package.
package models
