package models

import "strings"

// NetworkCredentials identify a wireless network to join in station mode.
// Values are replaced wholesale, never mutated in place.
type NetworkCredentials struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"` // empty for open networks
}

// Valid reports whether the credentials can be used for a connect attempt.
func (c NetworkCredentials) Valid() bool {
	return strings.TrimSpace(c.SSID) != ""
}
