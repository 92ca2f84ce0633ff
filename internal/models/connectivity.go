package models

// ConnectivityState is the current wireless mode of the device.
type ConnectivityState string

const (
	StateDisconnected      ConnectivityState = "DISCONNECTED"
	StateConnecting        ConnectivityState = "CONNECTING"
	StateStationConnected  ConnectivityState = "STATION_CONNECTED"
	StateAccessPointActive ConnectivityState = "ACCESS_POINT_ACTIVE"
)

// AllConnectivityStates lists every state, in transition order.
var AllConnectivityStates = []ConnectivityState{
	StateDisconnected,
	StateConnecting,
	StateStationConnected,
	StateAccessPointActive,
}

// WifiStatus is a point-in-time snapshot of connectivity.
type WifiStatus struct {
	State      ConnectivityState `json:"state"`
	Connected  bool              `json:"connected"`
	APMode     bool              `json:"ap_mode"`
	SSID       string            `json:"ssid,omitempty"`    // station only
	RSSI       *int              `json:"rssi,omitempty"`    // station only, dBm
	APSSID     string            `json:"ap_ssid,omitempty"` // AP only
	IP         string            `json:"ip"`
	StoredSSID string            `json:"stored_ssid"`
}

// ConnectResult describes a successful station connect.
type ConnectResult struct {
	IP    string
	Saved bool // credentials persisted
}

// ToggleResult describes the mode reached by a manual toggle.
type ToggleResult struct {
	State  ConnectivityState
	IP     string
	APSSID string
}
