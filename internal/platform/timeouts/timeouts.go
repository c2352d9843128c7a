// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreRequest caps the time a single page handler may spend in storage.
const StoreRequest = 2 * time.Second

// PushWrite caps a single websocket frame write to a browser.
const PushWrite = 5 * time.Second
