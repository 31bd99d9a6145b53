package autowire

const (
	// DefaultServiceSuffix marks properties wired to a service by name.
	DefaultServiceSuffix = "Service"
	// DefaultParameterSuffix marks properties wired to a parameter by name.
	DefaultParameterSuffix = "Parameter"
)

// Settings switch the individual resolution features.
type Settings struct {
	// Enabled turns the whole resolver on or off.
	Enabled bool
	// BuildDefinitions allows the resolver to register definitions for classes.
	// When false only classes whose id already exists are wired.
	BuildDefinitions bool

	PropertyInjection    PropertyInjectionSettings
	SetterInjection      MemberInjectionSettings
	ConstructorInjection MemberInjectionSettings
}

// PropertyInjectionSettings configure property injection.
type PropertyInjectionSettings struct {
	Enabled bool
	// WireByName wires unhinted properties by their suffix.
	WireByName      bool
	ServiceSuffix   string
	ParameterSuffix string
}

// MemberInjectionSettings configure constructor or setter injection.
type MemberInjectionSettings struct {
	Enabled bool
	// WireByType wires unhinted object parameters through the classname index.
	WireByType bool
}

// DefaultSettings returns settings with every feature enabled.
func DefaultSettings() Settings {
	return Settings{
		Enabled:          true,
		BuildDefinitions: true,
		PropertyInjection: PropertyInjectionSettings{
			Enabled:         true,
			WireByName:      true,
			ServiceSuffix:   DefaultServiceSuffix,
			ParameterSuffix: DefaultParameterSuffix,
		},
		SetterInjection: MemberInjectionSettings{
			Enabled:    true,
			WireByType: true,
		},
		ConstructorInjection: MemberInjectionSettings{
			Enabled:    true,
			WireByType: true,
		},
	}
}
