// Package autowire decides the wiring of service definitions from class descriptors.
//
// A [Resolver] takes a batch of [ClassDescriptor] values, assigns every class
// carrying a [ServiceDirective] a service id, and then works out what to inject
// into its constructor, its injectable methods and its properties. Results are
// written into a [Registry] as [Argument] values: service references,
// configuration parameters, or literals promoted into generated parameters.
//
// Hints use a sigil convention:
//
//	"@mailer"          reference to the service "mailer"
//	"%mailer.host%"    the configuration parameter "mailer.host"
//	"smtp"             a literal
//
// Unhinted object parameters are wired by type through a [ClassnameIndex].
// Unhinted properties are wired by name when they end with a configured suffix:
// a property "mailerService" is wired to the service "mailer".
//
// Example:
//
//	reg := container.New()
//	r, err := autowire.NewResolver(reg, autowire.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	_, err = r.Resolve(classes)
package autowire
