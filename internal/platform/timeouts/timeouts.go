// Package timeouts defines shared timeout constants used across the bot.
// Centralizing these values prevents drift between process boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long the ops HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight work during graceful
// shutdown.
const Shutdown = 5 * time.Second

// RenderCall caps a single outbound render request to the messaging
// collaborator.
const RenderCall = 3 * time.Second

// SessionIdle is the default inactivity window after which a stalled
// workflow is auto-cancelled back to idle. Zero disables expiry.
const SessionIdle = 30 * time.Minute
