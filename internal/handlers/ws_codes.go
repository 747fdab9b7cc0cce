// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the table handlers. These give
// clients a more specific reason for closure than the standard codes.
const (
	BadSubprotocolError = 3000 // Client connected with an unsupported subprotocol.
	InvalidTableIDError = 3002 // Target table ID in the WS URL is missing or unknown.
)
