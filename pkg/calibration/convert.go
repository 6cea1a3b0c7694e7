package calibration

// Convert maps a raw sensor voltage to force using the given calibration.
// The transform is pure: the same (voltage, record) pair always yields the
// same result.
//
// The input is clamped into the sensor's output range both before and after
// the tare subtraction; the ordering matters at the range boundaries and
// matches the device firmware, which applies the same formula.
// Readings below the tare point floor at zero newtons: the sensor cannot
// register negative compressive force in this model.
func Convert(voltage float64, rec Record) (newtons, grams float64) {
	clamped := clamp(voltage, rec.VoltageMin, rec.VoltageMax)

	adjusted := clamped - rec.TareVoltage + rec.VoltageMin
	adjusted = clamp(adjusted, rec.VoltageMin, rec.VoltageMax)

	ratio := (adjusted - rec.VoltageMin) / (rec.VoltageMax - rec.VoltageMin)
	newtons = ratio * rec.MaxForceNewtons
	if newtons < 0 {
		newtons = 0
	}
	return newtons, newtons * NewtonsToGrams
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
