// Package sensors turns the node's three sensor collaborators into
// per-channel wire values for the query protocol.
package sensors

import (
	"envcan-go/canproto"
	"envcan-go/errcode"
	"envcan-go/x/mathx"
)

// Analog provides scaled integer gas readings from the ADC.
type Analog interface {
	Methane() (uint16, error)
	CO() (uint16, error)
}

// CO2Sensor is the CO2/temperature/humidity sensor (SCD4x class).
type CO2Sensor interface {
	CO2() (uint16, error)          // ppm
	Temperature() (float32, error) // °C
	Humidity() (float32, error)    // %RH
}

// Barometer is the pressure/temperature/humidity sensor (BME280 class).
type Barometer interface {
	Temperature() (float32, error) // °C
	Humidity() (float32, error)    // %RH
	Pressure() (float32, error)    // Pa
}

// Station combines the collaborators into a canproto.Source.
// Collaborator lifetime belongs to the caller.
type Station struct {
	Analog Analog
	CO2    CO2Sensor
	Baro   Barometer
}

// Compile-time check.
var _ canproto.Source = (*Station)(nil)

// Value reads channel c. Temperature and humidity are the mean of both
// sensors, pressure is reported in kPa; all three are truncated toward zero.
func (s *Station) Value(c canproto.Channel) (int32, error) {
	switch c {
	case canproto.Methane:
		v, err := s.Analog.Methane()
		return int32(v), wrap("methane", err)
	case canproto.CO2:
		v, err := s.CO2.CO2()
		return int32(v), wrap("co2", err)
	case canproto.CO:
		v, err := s.Analog.CO()
		return int32(v), wrap("co", err)
	case canproto.Temperature:
		a, err := s.CO2.Temperature()
		if err != nil {
			return 0, wrap("temperature", err)
		}
		b, err := s.Baro.Temperature()
		if err != nil {
			return 0, wrap("temperature", err)
		}
		return Truncate(Mean(a, b)), nil
	case canproto.Humidity:
		a, err := s.CO2.Humidity()
		if err != nil {
			return 0, wrap("humidity", err)
		}
		b, err := s.Baro.Humidity()
		if err != nil {
			return 0, wrap("humidity", err)
		}
		return Truncate(Mean(a, b)), nil
	case canproto.Pressure:
		pa, err := s.Baro.Pressure()
		if err != nil {
			return 0, wrap("pressure", err)
		}
		return Truncate(pa / 1000), nil
	}
	return 0, &errcode.E{C: errcode.InvalidParams, Op: "station", Msg: "unknown channel " + c.String()}
}

func wrap(op string, err error) error { return errcode.Wrap(errcode.SensorRead, op, err) }

// Mean averages two readings.
func Mean(a, b float32) float32 { return (a + b) / 2 }

// Truncate drops the fractional part without rounding.
func Truncate(v float32) int32 { return mathx.TruncI32(v) }
