package board

import (
	"envcan-go/config"
	"envcan-go/drivers/ads7828"
	"envcan-go/errcode"
)

// applyScales installs the configured gas ranges on the ADC.
func applyScales(adc *ads7828.Device, cfg config.ADCConfig) error {
	for _, s := range []struct {
		name string
		ch   int
		sc   config.Scale
	}{
		{"methane", cfg.MethaneCh, cfg.Methane},
		{"co", cfg.COCh, cfg.CO},
	} {
		if err := adc.SetScale(s.ch, ads7828.Scale{Min: s.sc.Min, Max: s.sc.Max}); err != nil {
			return &errcode.E{C: errcode.SensorInit, Op: "adc_init", Msg: s.name + " scale", Err: err}
		}
	}
	return nil
}
