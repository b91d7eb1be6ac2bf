package feedback

// Config holds engine settings loaded from the environment.
type Config struct {
	StrictFields bool   `env:"FEEDBACK_STRICT_FIELDS" envDefault:"false"`
	NotifyBuffer int    `env:"FEEDBACK_NOTIFY_BUFFER" envDefault:"16"`
	DefaultStop  string `env:"FEEDBACK_DEFAULT_STOP" envDefault:"first-error"`
}

// NewFromConfig creates an Engine from cfg. Explicit opts are applied after
// cfg and win.
func NewFromConfig(cfg Config, opts ...Option) (*Engine, error) {
	stop, err := ParseStopPolicy(cfg.DefaultStop)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithStrictFields(cfg.StrictFields),
		WithNotifyBuffer(cfg.NotifyBuffer),
		WithDefaultStop(stop),
	}
	return New(append(base, opts...)...), nil
}
