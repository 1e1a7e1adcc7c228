package relink

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherFiresRegisteredCallbacks(t *testing.T) {
	var opened bool
	var closeEv CloseEvent
	var gotErr error
	var msg []byte

	d := dispatcher{
		onOpen:    func() { opened = true },
		onClose:   func(ev CloseEvent) { closeEv = ev },
		onError:   func(err error) { gotErr = err },
		onMessage: func(p []byte) { msg = p },
	}

	d.fireOpen()
	d.fireClose(CloseEvent{Code: CloseAbnormal, Reason: "drop"})
	d.fireError(errors.New("boom"))
	d.fireMessage([]byte("payload"))

	require.True(t, opened)
	require.Equal(t, CloseAbnormal, closeEv.Code)
	require.Equal(t, "drop", closeEv.Reason)
	require.EqualError(t, gotErr, "boom")
	require.Equal(t, []byte("payload"), msg)
}

func TestDispatcherToleratesMissingCallbacks(t *testing.T) {
	var d dispatcher
	require.NotPanics(t, func() {
		d.fireOpen()
		d.fireClose(CloseEvent{})
		d.fireError(errors.New("boom"))
		d.fireMessage([]byte("payload"))
	})
}

func TestDispatcherDropsNilError(t *testing.T) {
	called := false
	d := dispatcher{onError: func(error) { called = true }}
	d.fireError(nil)
	require.False(t, called)
}
