package models

// DeviceStatus combines pump and connectivity snapshots for live streaming.
type DeviceStatus struct {
	Pump PumpStatus `json:"pump"`
	Wifi WifiStatus `json:"wifi"`
}
