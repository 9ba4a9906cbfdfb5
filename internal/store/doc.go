// Package store persists sanitized documents.
//
// Every store refuses content that is not already in sanitized form, so
// nothing else can reach durable storage whichever client writes it.
package store
