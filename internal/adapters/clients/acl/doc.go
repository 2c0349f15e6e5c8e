// Package acl holds the anti-corruption layer for external services.
//
// Adapters here own the wire format of a downstream API. External DTOs stay
// unexported, HTTP failures become domain errors, and callers only ever see
// ports types:
//
//   - 404 Not Found → [domain.ErrNotFound]
//   - 409 Conflict → [domain.ErrConflict]
//   - 400/422 → [domain.ErrValidation]
//   - 401/403 → [domain.ErrForbidden]
//   - 429, 5xx and transport failures → [domain.ErrUnavailable]
//
// Client-level errors ([clients.ErrCircuitOpen], [clients.ErrMaxRetriesExceeded])
// are translated to [domain.ErrUnavailable] as well.
//
// [BaserowClient] is the only adapter today. New adapters embed [BaseAdapter]
// and decode with [DecodeResponse].
package acl
