package settings

// Flags are the two board toggles staff can flip from the kitchen screen.
type Flags struct {
	AutoPrint  bool `json:"autoPrint"`
	AutoStatus bool `json:"autoStatus"`
}

// EffectiveAutoStatus reports whether dwell-based transitions may run.
// Auto-status only applies while auto-print is also on.
func (f Flags) EffectiveAutoStatus() bool {
	return f.AutoPrint && f.AutoStatus
}

// DefaultFlags returns the toggles used before anything has been persisted.
func DefaultFlags() Flags {
	return Flags{AutoPrint: true, AutoStatus: false}
}

// UpdateInput is a partial update; nil fields keep their stored value.
type UpdateInput struct {
	AutoPrint  *bool `json:"autoPrint" validate:"required_without=AutoStatus"`
	AutoStatus *bool `json:"autoStatus" validate:"required_without=AutoPrint"`
}

func (in UpdateInput) apply(current Flags) Flags {
	next := current
	if in.AutoPrint != nil {
		next.AutoPrint = *in.AutoPrint
	}
	if in.AutoStatus != nil {
		next.AutoStatus = *in.AutoStatus
	}
	return next
}
