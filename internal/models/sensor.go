package models

// Soil moisture bands for a capacitive sensor on a 12-bit ADC.
// Higher raw values mean drier soil.
const (
	MoistureVeryMoist   = "very moist"
	MoistureFairlyMoist = "fairly moist"
	MoistureQuiteDry    = "quite dry"
	MoistureVeryDry     = "very dry"
	MoistureUnknown     = "Moisture level beyond comprehension"
)

// MoistureLevel maps a raw soil reading to a human readable band.
// Band edges are exclusive.
func MoistureLevel(raw float64) string {
	switch {
	case raw > 1000 && raw < 2000:
		return MoistureVeryMoist
	case raw > 2000 && raw < 2500:
		return MoistureFairlyMoist
	case raw > 2500 && raw < 3000:
		return MoistureQuiteDry
	case raw > 3000 && raw < 4000:
		return MoistureVeryDry
	default:
		return MoistureUnknown
	}
}
