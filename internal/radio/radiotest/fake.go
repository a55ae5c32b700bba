// Package radiotest provides an in-memory radio.Radio for tests.
package radiotest

import (
	"context"
	"sync"
	"time"

	"github.com/ytget/eyetooth/internal/model"
	"github.com/ytget/eyetooth/internal/radio"
)

// Peer describes how a fake device behaves when connected to.
type Peer struct {
	Services     []string
	ConnectErr   error
	ServicesErr  error
	Disconnected bool // connection opens but reports not connected
}

// ScanResult is one scripted Scan outcome.
type ScanResult struct {
	Devices []model.Device
	Err     error
}

// Radio is a scripted radio.Radio. Scans are answered from Scans in order;
// once exhausted every further scan returns no devices.
type Radio struct {
	mu sync.Mutex

	Scans []ScanResult
	Peers map[string]Peer

	ScanCalls    int
	ConnectCalls map[string]int
	Open         int // connections opened and not yet closed
	Timeouts     []time.Duration
}

// New returns a fake radio with the given peers keyed by address.
func New(peers map[string]Peer, scans ...ScanResult) *Radio {
	if peers == nil {
		peers = make(map[string]Peer)
	}
	return &Radio{
		Scans:        scans,
		Peers:        peers,
		ConnectCalls: make(map[string]int),
	}
}

func (r *Radio) Scan(ctx context.Context) ([]model.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ScanCalls++
	if len(r.Scans) == 0 {
		return nil, nil
	}
	next := r.Scans[0]
	r.Scans = r.Scans[1:]
	return next.Devices, next.Err
}

func (r *Radio) Connect(ctx context.Context, dev model.Device, timeout time.Duration) (radio.Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ConnectCalls[dev.Address]++
	r.Timeouts = append(r.Timeouts, timeout)

	peer, ok := r.Peers[dev.Address]
	if !ok {
		return nil, radio.ErrUnknownDevice
	}
	if peer.ConnectErr != nil {
		return nil, peer.ConnectErr
	}
	r.Open++
	return &conn{radio: r, peer: peer}, nil
}

// OpenConns returns the number of connections not yet closed.
func (r *Radio) OpenConns() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Open
}

// Connects returns how many times address was connected to.
func (r *Radio) Connects(address string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ConnectCalls[address]
}

type conn struct {
	radio  *Radio
	peer   Peer
	closed bool
}

func (c *conn) Services(ctx context.Context) ([]string, error) {
	if c.peer.ServicesErr != nil {
		return nil, c.peer.ServicesErr
	}
	return c.peer.Services, nil
}

func (c *conn) IsConnected() bool {
	return !c.closed && !c.peer.Disconnected
}

func (c *conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.radio.mu.Lock()
	c.radio.Open--
	c.radio.mu.Unlock()
	return nil
}
