package probe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/eyetooth/internal/model"
	"github.com/ytget/eyetooth/internal/radio"
	"github.com/ytget/eyetooth/internal/radio/radiotest"
)

const (
	uuidBattery = "0000180f-0000-1000-8000-00805f9b34fb"
	uuidHeart   = "0000180d-0000-1000-8000-00805f9b34fb"
)

var (
	speaker = model.Device{Address: "AA", Name: "Speaker"}
	watch   = model.Device{Address: "BB", Name: "Watch"}
)

func TestIsAudioService(t *testing.T) {
	for _, uuid := range []string{
		UUIDA2DP, UUIDHandsFree, UUIDAVRCP, UUIDPBAP,
		UUIDAudioSink, UUIDAudioSource, UUIDAudioEndpoint,
	} {
		assert.True(t, IsAudioService(uuid), uuid)
	}
	assert.Len(t, audioServices, 7)

	assert.False(t, IsAudioService(uuidBattery))
	assert.False(t, IsAudioService(strings.ToUpper(UUIDA2DP)), "match is case-sensitive")
	assert.False(t, IsAudioService(""))
}

func TestIsAudio(t *testing.T) {
	r := radiotest.New(map[string]radiotest.Peer{
		"AA": {Services: []string{uuidBattery, UUIDA2DP, uuidHeart}},
		"BB": {Services: []string{uuidBattery, uuidHeart}},
	})

	var out bytes.Buffer
	p := New(r, &out, time.Second)

	assert.True(t, p.IsAudio(context.Background(), speaker))
	// stops at the first match
	assert.Equal(t, "Service found: "+uuidBattery+"\nService found: "+UUIDA2DP+"\n", out.String())

	out.Reset()
	assert.False(t, p.IsAudio(context.Background(), watch))
	assert.Equal(t, 2, strings.Count(out.String(), "Service found: "))

	assert.Zero(t, r.OpenConns(), "connections must be closed")
	assert.Equal(t, []time.Duration{time.Second, time.Second}, r.Timeouts)
}

func TestIsAudio_ConnectionErrors(t *testing.T) {
	r := radiotest.New(map[string]radiotest.Peer{
		"AA": {ConnectErr: radio.ErrTimeout},
		"BB": {ConnectErr: errors.New("le-connection-abort-by-local")},
		"CC": {ServicesErr: errors.New("gatt failure")},
	})

	var out bytes.Buffer
	p := New(r, &out, time.Second)

	assert.False(t, p.IsAudio(context.Background(), speaker))
	assert.Contains(t, out.String(), "Timeout while connecting to Speaker")

	out.Reset()
	assert.False(t, p.IsAudio(context.Background(), watch))
	assert.Contains(t, out.String(), "An error occurred: le-connection-abort-by-local")

	out.Reset()
	assert.False(t, p.IsAudio(context.Background(), model.Device{Address: "CC"}))
	assert.Contains(t, out.String(), "An error occurred: gatt failure")

	assert.Zero(t, r.OpenConns())
}

func TestIsAvailable(t *testing.T) {
	r := radiotest.New(map[string]radiotest.Peer{
		"AA": {},
		"BB": {Disconnected: true},
		"CC": {ConnectErr: radio.ErrTimeout},
	})

	var out bytes.Buffer
	p := New(r, &out, 0)

	assert.True(t, p.IsAvailable(context.Background(), speaker))
	assert.False(t, p.IsAvailable(context.Background(), watch))
	assert.False(t, p.IsAvailable(context.Background(), model.Device{Address: "CC", Name: "Buds"}))
	assert.False(t, p.IsAvailable(context.Background(), model.Device{Address: "ZZ"}))

	assert.Contains(t, out.String(), "Timeout while connecting to Buds")
	assert.Contains(t, out.String(), "An error occurred: "+radio.ErrUnknownDevice.Error())
	assert.Zero(t, r.OpenConns())
	assert.Equal(t, DefaultTimeout, r.Timeouts[0])
}
