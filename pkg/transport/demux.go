package transport

import (
	"net"
	"sync"
	"time"

	"github.com/backkem/stun/pkg/stun"
	"github.com/pion/logging"
)

// MessageHandler receives each decoded STUN message with its source
// address.
type MessageHandler func(msg *stun.Message, addr net.Addr)

// PacketHandler receives each non-STUN datagram with its source address.
// The data slice is owned by the handler.
type PacketHandler func(data []byte, addr net.Addr)

// Demux splits a shared packet socket into STUN and application traffic.
// Datagrams starting with a valid STUN header are decoded and handed to
// the message handler; everything else goes to the packet handler
// untouched. Packets that look like STUN but fail to decode are logged
// and dropped.
//
// Demux is purely a classifier: retransmission, transaction matching and
// response generation stay with the caller.
type Demux struct {
	conn          net.PacketConn
	stunHandler   MessageHandler
	packetHandler PacketHandler
	closeCh       chan struct{}
	wg            sync.WaitGroup
	log           logging.LeveledLogger

	mu      sync.RWMutex
	started bool
	closed  bool
}

// DemuxConfig configures a Demux.
type DemuxConfig struct {
	// Conn is the shared packet connection to read from. Required.
	Conn net.PacketConn

	// MessageHandler is called for each decoded STUN message. Required.
	MessageHandler MessageHandler

	// PacketHandler is called for each non-STUN datagram.
	// If nil, non-STUN traffic is dropped.
	PacketHandler PacketHandler

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// NewDemux creates a new demultiplexer with the given configuration.
func NewDemux(config DemuxConfig) (*Demux, error) {
	if config.Conn == nil {
		return nil, ErrNoConn
	}
	if config.MessageHandler == nil {
		return nil, ErrNoHandler
	}

	d := &Demux{
		conn:          config.Conn,
		stunHandler:   config.MessageHandler,
		packetHandler: config.PacketHandler,
		closeCh:       make(chan struct{}),
	}

	if config.LoggerFactory != nil {
		d.log = config.LoggerFactory.NewLogger("stun-demux")
	}

	return d, nil
}

// Start begins the read loop. Each datagram is classified and dispatched
// to the matching handler.
func (d *Demux) Start() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.started {
		d.mu.Unlock()
		return ErrAlreadyStarted
	}
	d.started = true
	d.mu.Unlock()

	if d.log != nil {
		d.log.Infof("starting STUN demux on %s", d.conn.LocalAddr())
	}

	d.wg.Add(1)
	go d.readLoop()

	return nil
}

// Stop closes the demux and waits for the read loop to exit.
// The underlying connection is closed.
func (d *Demux) Stop() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.closed = true
	d.mu.Unlock()

	if d.log != nil {
		d.log.Info("stopping STUN demux")
	}

	close(d.closeCh)

	// Unblock any pending read.
	d.conn.SetReadDeadline(time.Now())
	d.conn.Close()
	d.wg.Wait()

	return nil
}

// Send encodes msg and writes it to the specified address.
func (d *Demux) Send(msg *stun.Message, addr net.Addr) error {
	if addr == nil {
		return ErrInvalidAddress
	}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		return ErrClosed
	}
	d.mu.RUnlock()

	data, err := msg.Encode()
	if err != nil {
		return err
	}

	if d.log != nil {
		d.log.Debugf("sending %d bytes to %v", len(data), addr)
	}

	_, err = d.conn.WriteTo(data, addr)
	if err != nil && d.log != nil {
		d.log.Warnf("send failed: %v", err)
	}
	return err
}

// LocalAddr returns the local address of the shared connection.
func (d *Demux) LocalAddr() net.Addr {
	return d.conn.LocalAddr()
}

// readLoop reads datagrams and dispatches them by classification.
func (d *Demux) readLoop() {
	defer d.wg.Done()

	buf := make([]byte, maxDatagramSize)

	for {
		select {
		case <-d.closeCh:
			return
		default:
		}

		n, addr, err := d.conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-d.closeCh:
				return
			default:
				if d.log != nil {
					d.log.Warnf("read error: %v", err)
				}
				continue
			}
		}
		if n == 0 {
			continue
		}

		// Handlers own the data; the read buffer is reused.
		data := make([]byte, n)
		copy(data, buf[:n])

		if !stun.IsMessage(data) {
			if d.packetHandler != nil {
				d.packetHandler(data, addr)
			}
			continue
		}

		msg, err := stun.Decode(data)
		if err != nil {
			if d.log != nil {
				d.log.Debugf("dropping malformed STUN packet from %v: %v", addr, err)
			}
			continue
		}

		if d.log != nil {
			d.log.Debugf("received %s from %v", msg.Type.Class, addr)
		}
		d.stunHandler(msg, addr)
	}
}
