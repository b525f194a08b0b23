//go:build !rp2040 && !rp2350

package board

import (
	"envcan-go/canbus"
	"envcan-go/config"
	"envcan-go/errcode"
	"envcan-go/sensors"
	"envcan-go/x/logx"
)

// Setup builds a host node: simulated sensors and a loopback or SocketCAN
// transport.
func Setup(cfg config.Config) (*Board, error) {
	b := &Board{}

	switch cfg.CAN.Transport {
	case canbus.KindLoopback:
		lb := canbus.NewLoopback(cfg.CAN.QueueLen)
		b.Transport = lb
		b.onClose(lb.Close)
	case canbus.KindSocketCAN:
		sc, err := canbus.OpenSocketCAN(cfg.CAN.Interface, cfg.CAN.QueueLen)
		if err != nil {
			return nil, err
		}
		b.Transport = sc
		b.onClose(sc.Close)
	default:
		return nil, &errcode.E{C: errcode.Unsupported, Op: "can_init", Msg: string(cfg.CAN.Transport) + " on host"}
	}

	b.Sim = sensors.NewSim(sensors.DefaultSimValues)
	b.Source = b.Sim.Station()

	logx.Info("board", "host node:", string(cfg.CAN.Transport), "transport, simulated sensors")
	return b, nil
}
