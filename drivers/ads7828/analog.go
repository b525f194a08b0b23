package ads7828

// GasPair exposes two ADC channels as methane and CO readings.
type GasPair struct {
	Dev       *Device
	MethaneCh int
	COCh      int
}

func (g GasPair) Methane() (uint16, error) { return g.Dev.Scaled(g.MethaneCh) }
func (g GasPair) CO() (uint16, error)      { return g.Dev.Scaled(g.COCh) }
