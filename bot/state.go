package bot

// State is the registration state of a sender, derived once per event.
type State struct {
	registered bool
	taxID      string
}

// Unregistered is the state of a sender with no tax identifier on file.
func Unregistered() State { return State{} }

// Registered is the state of a sender linked to taxID.
func Registered(taxID string) State { return State{registered: true, taxID: taxID} }

// IsRegistered reports whether the sender has a tax identifier.
func (s State) IsRegistered() bool { return s.registered }

// TaxID returns the registered tax identifier, or "" when unregistered.
func (s State) TaxID() string { return s.taxID }

func (s State) String() string {
	if s.registered {
		return "registered"
	}
	return "unregistered"
}
