package sensors

import "sync"

// Sim is a settable stand-in for all three collaborators, used on host
// builds and in tests. The zero value reads as all zeros.
type Sim struct {
	mu   sync.Mutex
	vals SimValues
	fail error
}

// SimValues holds the raw collaborator outputs.
type SimValues struct {
	Methane, CO, CO2  uint16
	CO2Temp, BaroTemp float32
	CO2Hum, BaroHum   float32
	PressurePa        float32
}

// DefaultSimValues resembles a quiet indoor room at sea level.
var DefaultSimValues = SimValues{
	Methane:    420,
	CO:         35,
	CO2:        640,
	CO2Temp:    21.8,
	BaroTemp:   22.6,
	CO2Hum:     44.1,
	BaroHum:    45.7,
	PressurePa: 101325,
}

// NewSim returns a simulator preloaded with v.
func NewSim(v SimValues) *Sim { return &Sim{vals: v} }

// Set replaces all readings.
func (s *Sim) Set(v SimValues) {
	s.mu.Lock()
	s.vals = v
	s.mu.Unlock()
}

// Fail makes every subsequent read return err (nil restores normal reads).
func (s *Sim) Fail(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

func (s *Sim) snapshot() (SimValues, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vals, s.fail
}

func (s *Sim) Methane() (uint16, error) { v, err := s.snapshot(); return v.Methane, err }
func (s *Sim) CO() (uint16, error)      { v, err := s.snapshot(); return v.CO, err }

// CO2Sensor returns the CO2/temperature/humidity view.
func (s *Sim) CO2Sensor() CO2Sensor { return simCO2{s} }

// Barometer returns the pressure/temperature/humidity view.
func (s *Sim) Barometer() Barometer { return simBaro{s} }

// Station wires all three views of s.
func (s *Sim) Station() *Station {
	return &Station{Analog: s, CO2: s.CO2Sensor(), Baro: s.Barometer()}
}

type simCO2 struct{ s *Sim }

func (c simCO2) CO2() (uint16, error)          { v, err := c.s.snapshot(); return v.CO2, err }
func (c simCO2) Temperature() (float32, error) { v, err := c.s.snapshot(); return v.CO2Temp, err }
func (c simCO2) Humidity() (float32, error)    { v, err := c.s.snapshot(); return v.CO2Hum, err }

type simBaro struct{ s *Sim }

func (b simBaro) Temperature() (float32, error) { v, err := b.s.snapshot(); return v.BaroTemp, err }
func (b simBaro) Humidity() (float32, error)    { v, err := b.s.snapshot(); return v.BaroHum, err }
func (b simBaro) Pressure() (float32, error)    { v, err := b.s.snapshot(); return v.PressurePa, err }
