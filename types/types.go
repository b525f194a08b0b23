// Package types holds the payloads the node publishes on its in-process bus.
// Values are small fixed-size types to suit TinyGo.
package types

// NodeState is retained on envcan/state.
type NodeState struct {
	Level  string // "init", "ready", "init_failed", "stopped"
	Status string // short code, e.g. an errcode value
	TS     int64  // unix ms
}

const (
	LevelInit       = "init"
	LevelReady      = "ready"
	LevelInitFailed = "init_failed"
	LevelStopped    = "stopped"
)

// ResponseEvent is retained on envcan/response after each served request.
type ResponseEvent struct {
	Mask    uint8   // requested channels, bit i = channel i
	Payload [9]byte // encoded payload
	FrameB  bool    // frame B was due and attempted; see Sent for delivery
	Sent    uint8   // frames handed to the transport without error
	ReadErr string  // first sensor read error code, if any
	TxErr   string  // first transmit error code, if any
	TS      int64   // unix ms
}

// Counters is retained on envcan/stats.
type Counters struct {
	Requests uint32 // request frames served
	Ignored  uint32 // frames with other identifiers
	ReadErrs uint32
	TxErrs   uint32
	RxErrs   uint32
}
