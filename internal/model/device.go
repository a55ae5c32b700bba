package model

import "fmt"

// Device is a handle to one discovered Bluetooth device. It is only valid for
// the lifetime of the process that scanned it.
type Device struct {
	Address string // hardware address as reported by the adapter
	Name    string // advertised local name, may be empty
	RSSI    int16
}

// String returns the address and name in the form used by console output.
func (d Device) String() string {
	return fmt.Sprintf("Address: %s, Name: %s", d.Address, d.Name)
}

// AudioSet holds the addresses of devices classified as audio-capable during
// one scan.
type AudioSet map[string]struct{}

// NewAudioSet creates a set from the given addresses
func NewAudioSet(addresses ...string) AudioSet {
	s := make(AudioSet, len(addresses))
	for _, a := range addresses {
		s.Add(a)
	}
	return s
}

// Add inserts an address into the set
func (s AudioSet) Add(address string) {
	s[address] = struct{}{}
}

// Has reports whether the address is in the set. A nil set contains nothing.
func (s AudioSet) Has(address string) bool {
	_, ok := s[address]
	return ok
}

// Len returns the number of addresses in the set
func (s AudioSet) Len() int {
	return len(s)
}
