// Package hardware defines the device boundary: the wireless radio, the pump
// output pin and the environmental sensors.
//
// Only the interfaces are consumed by the rest of the module. The Sim*
// implementations let the control core run and be tested on a desktop
// machine without the irrigation board attached.
package hardware
