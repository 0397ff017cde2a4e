package control

import (
	"github.com/golang/glog"
	"github.com/hypebeast/go-osc/osc"
)

// OSC addresses understood by Dispatcher.
const (
	AbsoluteAddress = "/matrix"
	SparseAddress   = "/sparse"
)

// Dispatcher routes decoded OSC packets to a Handler.
type Dispatcher struct {
	h *Handler
}

// NewDispatcher returns an osc.Dispatcher driving h.
func NewDispatcher(h *Handler) *Dispatcher {
	return &Dispatcher{h: h}
}

// NewOSCServer returns a UDP server on addr ("host:port") that applies
// incoming messages to h.
func NewOSCServer(addr string, h *Handler) *osc.Server {
	return &osc.Server{Addr: addr, Dispatcher: NewDispatcher(h)}
}

// Dispatch implements osc.Dispatcher.
func (d *Dispatcher) Dispatch(packet osc.Packet) {
	switch p := packet.(type) {
	case *osc.Message:
		d.handle(p)
	case *osc.Bundle:
		for _, m := range p.Messages {
			d.handle(m)
		}
		for _, b := range p.Bundles {
			d.Dispatch(b)
		}
	}
}

func (d *Dispatcher) handle(msg *osc.Message) {
	if err := d.Apply(msg); err != nil {
		glog.Warningf("rejected %s: %v", msg.Address, err)
	}
}

// Apply executes one message and returns its validation error, if any.
// Unknown addresses are ignored.
func (d *Dispatcher) Apply(msg *osc.Message) error {
	switch msg.Address {
	case AbsoluteAddress:
		values, err := DecodeAbsolute(msg.Arguments)
		if err != nil {
			return err
		}
		return d.h.SetAbsolute(values)
	case SparseAddress:
		cells, err := DecodeSparse(msg.Arguments)
		if err != nil {
			return err
		}
		return d.h.SetSparse(cells)
	default:
		if glog.V(2) {
			glog.Infof("ignoring OSC message %s with %d arguments", msg.Address, len(msg.Arguments))
		}
		return nil
	}
}
