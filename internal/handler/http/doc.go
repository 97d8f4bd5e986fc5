// Package http serves a byte storage over HTTP.
//
// Routes mirror the storage contract consumed by the http storage adapter:
//
//	GET    /files/{path}   read a file
//	PUT    /files/{path}   write a file
//	DELETE /files/{path}   remove a file
//	GET    /list/{dir}     list a directory as JSON
//
// Request tracing, access logging, compression and body digests are
// handled by middleware before a request reaches the storage.
package http
