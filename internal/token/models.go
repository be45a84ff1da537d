// Package token provides the push-registration token registry.
package token

import "time"

// DeviceToken is one registered push-notification recipient. The token string
// is the opaque delivery address issued by the push provider to a single
// browser or device installation.
type DeviceToken struct {
	Token        string
	RegisteredAt time.Time
}
