//go:build rp2040 || rp2350

package board

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/bme280"
	"tinygo.org/x/drivers/mcp2515"
	"tinygo.org/x/drivers/scd4x"

	"envcan-go/canbus"
	"envcan-go/config"
	"envcan-go/drivers/ads7828"
	"envcan-go/errcode"
	"envcan-go/sensors"
	"envcan-go/x/logx"
)

// Pin plan (Pico): I2C0 on GP4/GP5 for all sensors, MCP2515 on SPI0 with
// SCK GP18, SDO GP19, SDI GP16, CS GP17, debug console on UART0 GP0/GP1.
const (
	pinSDA = machine.GP4
	pinSCL = machine.GP5

	pinSCK = machine.GP18
	pinSDO = machine.GP19
	pinSDI = machine.GP16
	pinCS  = machine.GP17

	pinUARTTX = machine.GP0
	pinUARTRX = machine.GP1
)

// Setup brings up every collaborator. On failure it returns an *errcode.E
// naming the step; nothing is retried here.
func Setup(cfg config.Config) (*Board, error) {
	b := &Board{}

	if cfg.Log.DebugUART {
		u := uartx.UART0
		if err := u.Configure(uartx.UARTConfig{
			BaudRate: 115200,
			TX:       pinUARTTX,
			RX:       pinUARTRX,
		}); err == nil {
			logx.SetSink(u)
		}
	}

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       pinSDA,
		SCL:       pinSCL,
	}); err != nil {
		return nil, &errcode.E{C: errcode.BusInit, Op: "i2c_init", Msg: cfg.ADC.Bus, Err: err}
	}

	co2 := scd4x.New(i2c)
	if err := co2.Configure(); err != nil {
		return nil, &errcode.E{C: errcode.SensorInit, Op: "co2_init", Err: err}
	}
	if err := co2.StartPeriodicMeasurement(); err != nil {
		return nil, &errcode.E{C: errcode.SensorInit, Op: "co2_init", Msg: "start", Err: err}
	}

	baro := bme280.New(i2c)
	baro.Address = cfg.Baro.Address
	baro.Configure()
	if !baro.Connected() {
		return nil, &errcode.E{C: errcode.SensorInit, Op: "baro_init", Msg: "no bme280 at configured address"}
	}

	adc := ads7828.New(i2c)
	if err := adc.Configure(ads7828.Config{AddressPins: cfg.ADC.AddressPins, PowerDown: ads7828.RefOnADCOn}); err != nil {
		return nil, &errcode.E{C: errcode.SensorInit, Op: "adc_init", Err: err}
	}
	if err := applyScales(adc, cfg.ADC); err != nil {
		return nil, err
	}

	b.Source = &sensors.Station{
		Analog: ads7828.GasPair{Dev: adc, MethaneCh: cfg.ADC.MethaneCh, COCh: cfg.ADC.COCh},
		CO2:    scd4xSensor{dev: co2},
		Baro:   bme280Sensor{dev: &baro},
	}

	switch cfg.CAN.Transport {
	case canbus.KindMCP2515:
		can, err := canbus.OpenMCP2515(canbus.MCP2515Config{
			SPI:   machine.SPI0,
			SCK:   pinSCK,
			SDO:   pinSDO,
			SDI:   pinSDI,
			CS:    pinCS,
			Speed: mcpSpeed(cfg.CAN.BitrateKbps),
			Clock: mcp2515.Clock8MHz,
		})
		if err != nil {
			return nil, err
		}
		b.Transport = can
		b.onClose(can.Close)
	case canbus.KindLoopback:
		lb := canbus.NewLoopback(cfg.CAN.QueueLen)
		b.Transport = lb
		b.onClose(lb.Close)
	default:
		return nil, &errcode.E{C: errcode.Unsupported, Op: "can_init", Msg: string(cfg.CAN.Transport) + " on rp2"}
	}

	if cfg.LED.Pin >= 0 {
		p := machine.Pin(cfg.LED.Pin)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
		b.LED = pinLED{p: p}
	}

	logx.Info("board", "rp2 node up, can", cfg.CAN.BitrateKbps, "kbit/s")
	return b, nil
}

func mcpSpeed(kbps int) byte {
	switch kbps {
	case 125:
		return mcp2515.CAN125kBps
	case 250:
		return mcp2515.CAN250kBps
	case 1000:
		return mcp2515.CAN1000kBps
	default:
		return mcp2515.CAN500kBps
	}
}

// ---- Collaborator adaptors ----

type pinLED struct{ p machine.Pin }

func (l pinLED) Toggle() { l.p.Set(!l.p.Get()) }

// scd4xSensor adapts the SCD4x driver (ppm, milli-°C, %RH) to sensors.CO2Sensor.
type scd4xSensor struct{ dev *scd4x.Device }

func (s scd4xSensor) CO2() (uint16, error) {
	v, err := s.dev.ReadCO2()
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func (s scd4xSensor) Temperature() (float32, error) {
	mc, err := s.dev.ReadTemperature()
	return float32(mc) / 1000, err
}

func (s scd4xSensor) Humidity() (float32, error) {
	rh, err := s.dev.ReadHumidity()
	return float32(rh), err
}

// bme280Sensor adapts the BME280 driver (milli-°C, centi-%RH, milli-Pa) to
// sensors.Barometer.
type bme280Sensor struct{ dev *bme280.Device }

func (s bme280Sensor) Temperature() (float32, error) {
	mc, err := s.dev.ReadTemperature()
	return float32(mc) / 1000, err
}

func (s bme280Sensor) Humidity() (float32, error) {
	rh, err := s.dev.ReadHumidity()
	return float32(rh) / 100, err
}

func (s bme280Sensor) Pressure() (float32, error) {
	mpa, err := s.dev.ReadPressure()
	return float32(mpa) / 1000, err
}
