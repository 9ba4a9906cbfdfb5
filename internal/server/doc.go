// Package server exposes document persistence over HTTP.
//
// Routes, all under /api/documents:
//
//	GET    /          list documents
//	POST   /          create a document with a fresh ID
//	GET    /:id       fetch a document
//	PUT    /:id       create or replace a document
//	DELETE /:id       delete a document
//
// Incoming content is sanitized before it reaches the store. Plain text
// without markup is wrapped in paragraphs first. Every response uses the
// Response envelope.
package server
