// Package requestid attaches a correlation identifier to every request.
//
// Middleware reuses a valid client-supplied X-Request-ID or generates a
// UUID, stores it in the context, and echoes it in the response header.
// LoggerExtractor plugs into the logger package so every record carries
// the id of the request that produced it.
package requestid
