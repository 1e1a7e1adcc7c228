package relink

// dispatcher routes transport signals to the single registered callback per
// signal kind. Callbacks run synchronously on the signal path, in the order
// the transport raised the signals; missing callbacks drop the signal.
type dispatcher struct {
	onOpen    func()
	onClose   func(CloseEvent)
	onError   func(error)
	onMessage func([]byte)
}

func (d *dispatcher) fireOpen() {
	if d.onOpen != nil {
		d.onOpen()
	}
}

func (d *dispatcher) fireClose(ev CloseEvent) {
	if d.onClose != nil {
		d.onClose(ev)
	}
}

func (d *dispatcher) fireError(err error) {
	if d.onError != nil && err != nil {
		d.onError(err)
	}
}

func (d *dispatcher) fireMessage(payload []byte) {
	if d.onMessage != nil {
		d.onMessage(payload)
	}
}
