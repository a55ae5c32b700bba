package probe

// Bluetooth SIG service class UUIDs that mark a device as audio-capable.
const (
	UUIDA2DP          = "0000110a-0000-1000-8000-00805f9b34fb"
	UUIDHandsFree     = "00001108-0000-1000-8000-00805f9b34fb" // HFP / HSP
	UUIDAVRCP         = "0000110e-0000-1000-8000-00805f9b34fb"
	UUIDPBAP          = "0000112f-0000-1000-8000-00805f9b34fb"
	UUIDAudioSink     = "00001812-0000-1000-8000-00805f9b34fb"
	UUIDAudioSource   = "00001813-0000-1000-8000-00805f9b34fb"
	UUIDAudioEndpoint = "00001816-0000-1000-8000-00805f9b34fb"
)

var audioServices = map[string]struct{}{
	UUIDA2DP:          {},
	UUIDHandsFree:     {},
	UUIDAVRCP:         {},
	UUIDPBAP:          {},
	UUIDAudioSink:     {},
	UUIDAudioSource:   {},
	UUIDAudioEndpoint: {},
}

// IsAudioService reports whether uuid is one of the known audio service
// identifiers. The match is exact and case-sensitive.
func IsAudioService(uuid string) bool {
	_, ok := audioServices[uuid]
	return ok
}
