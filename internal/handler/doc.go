// Package handler implements the HTTP API of the visualization page.
//
// Each endpoint maps onto one session operation: loading presets, running
// console queries, selecting elements, moving the camera and dismissing
// the banner. The page itself follows changes over /events (SSE) and
// draws through /surface (WebSocket).
//
// # Response Format
//
// Success responses return JSON data. Error responses return JSON with an
// {error, details} structure. Failures are mapped to status codes by
// category: fetch and query failures are 502, results that cannot be
// visualized are 422, and requests overtaken by a newer one are 409.
package handler
