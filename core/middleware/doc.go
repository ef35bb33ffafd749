// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// API consumers are not authenticated; the query server is meant to sit behind the
// deployment's own gateway.
package middleware
