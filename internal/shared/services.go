package shared

// scriptService and transportService adapt Resources' already-constructed
// subsystems to lifecycle.Service so Resources.Start/Stop can sequence
// them in dependency order through the Hub, instead of hand-rolling a
// bespoke start/stop sequence for two subsystems (the point of having
// lifecycle.Hub at all is to not special-case this per caller).

type scriptService struct{ r *Resources }

func (s scriptService) Name() string           { return "scripts" }
func (s scriptService) Dependencies() []string { return nil }
func (s scriptService) Init(any) error         { return nil }
func (s scriptService) Start() error           { return nil }
func (s scriptService) Stop() error            { return nil }

type transportService struct{ r *Resources }

func (s transportService) Name() string           { return "transport" }
func (s transportService) Dependencies() []string { return []string{"scripts"} }
func (s transportService) Init(any) error         { return nil }
func (s transportService) Start() error           { return s.r.Transport.Start() }
func (s transportService) Stop() error            { return s.r.Transport.Stop() }

// Start brings every registered subsystem up in dependency order.
func (r *Resources) Start() error {
	if err := r.Hub.InitAll(r); err != nil {
		return err
	}
	return r.Hub.StartAll()
}

// Stop tears every subsystem down in reverse start order.
func (r *Resources) Stop() {
	r.Hub.StopAll()
}
