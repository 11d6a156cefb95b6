package transport

import (
	"fmt"
	"net"
	"time"

	"github.com/pion/transport/v3/test"
)

// Pipe provides bidirectional in-memory packet communication between two
// endpoints, wrapping pion's test.Bridge. Use it for deterministic demux
// tests without real network I/O.
type Pipe struct {
	bridge  *test.Bridge
	closeCh chan struct{}
}

// NewPipe creates a pipe and starts a background goroutine delivering
// queued packets.
func NewPipe() *Pipe {
	p := &Pipe{
		bridge:  test.NewBridge(),
		closeCh: make(chan struct{}),
	}
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-p.closeCh:
				return
			case <-ticker.C:
				p.bridge.Tick()
			}
		}
	}()
	return p
}

// Conn0 returns the packet connection for endpoint 0.
func (p *Pipe) Conn0() net.PacketConn {
	return &pipePacketConn{conn: p.bridge.GetConn0(), localID: 0}
}

// Conn1 returns the packet connection for endpoint 1.
func (p *Pipe) Conn1() net.PacketConn {
	return &pipePacketConn{conn: p.bridge.GetConn1(), localID: 1}
}

// Close stops packet delivery and closes both endpoints.
func (p *Pipe) Close() error {
	close(p.closeCh)
	err0 := p.bridge.GetConn0().Close()
	err1 := p.bridge.GetConn1().Close()
	if err0 != nil {
		return err0
	}
	return err1
}

// PipeAddr implements net.Addr for pipe endpoints.
type PipeAddr struct {
	ID int
}

// Network returns "pipe".
func (a PipeAddr) Network() string { return "pipe" }

// String returns a string representation of the address.
func (a PipeAddr) String() string { return fmt.Sprintf("pipe:%d", a.ID) }

// pipePacketConn adapts one bridge endpoint to net.PacketConn. The pipe
// has a single peer, so addresses are fixed.
type pipePacketConn struct {
	conn    net.Conn
	localID int
}

func (c *pipePacketConn) ReadFrom(b []byte) (int, net.Addr, error) {
	n, err := c.conn.Read(b)
	return n, PipeAddr{ID: 1 - c.localID}, err
}

func (c *pipePacketConn) WriteTo(b []byte, _ net.Addr) (int, error) {
	return c.conn.Write(b)
}

func (c *pipePacketConn) Close() error { return c.conn.Close() }

func (c *pipePacketConn) LocalAddr() net.Addr { return PipeAddr{ID: c.localID} }

func (c *pipePacketConn) SetDeadline(t time.Time) error { return c.conn.SetDeadline(t) }

func (c *pipePacketConn) SetReadDeadline(t time.Time) error { return c.conn.SetReadDeadline(t) }

func (c *pipePacketConn) SetWriteDeadline(t time.Time) error { return c.conn.SetWriteDeadline(t) }

var _ net.PacketConn = (*pipePacketConn)(nil)
