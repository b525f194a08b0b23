package mathx

// MapU16 maps x from [inMin,inMax] onto [outMin,outMax] with 32-bit
// intermediates, rounding down. Inputs outside the range are clamped first;
// a reversed output range maps inMin to outMin all the same.
func MapU16(x, inMin, inMax, outMin, outMax uint16) uint16 {
	if inMax <= inMin {
		return outMin
	}
	x = Clamp(x, inMin, inMax)
	span := int32(outMax) - int32(outMin)
	off := int32(x-inMin) * span / int32(inMax-inMin)
	return uint16(int32(outMin) + off)
}
