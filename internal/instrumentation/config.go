package instrumentation

// Config controls whether and how telemetry is collected.
type Config struct {
	// Enabled turns metric collection on. When false the provider is a
	// no-op and no exporter is created.
	Enabled bool

	// ServiceName identifies this process in exported telemetry.
	ServiceName string

	// ServiceVersion is the build version reported with the service.
	ServiceVersion string
}

// DefaultConfig returns a disabled configuration for the given version.
// Callers flip Enabled when the operator asks for metrics.
func DefaultConfig(version string) Config {
	return Config{
		Enabled:        false,
		ServiceName:    "teamscribe",
		ServiceVersion: version,
	}
}
