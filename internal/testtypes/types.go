package testtypes

import "github.com/sectrean/autowire"

// Class names of the mailer fixture.
const (
	LoggerInterface    = `Acme\Log\LoggerInterface`
	FileLogger         = `Acme\Log\FileLogger`
	TransportInterface = `Acme\Mail\TransportInterface`
	SmtpTransport      = `Acme\Mail\SmtpTransport`
	Mailer             = `Acme\Mail\Mailer`
	Newsletter         = `Acme\Mail\Newsletter`
	Cache              = `Acme\Cache\Cache`
)

// Types declares the interfaces of the mailer fixture.
func Types() []autowire.TypeDeclaration {
	return []autowire.TypeDeclaration{
		{Name: LoggerInterface, Interface: true},
		{Name: TransportInterface, Interface: true},
		{Name: Cache},
	}
}

// Param returns an untyped parameter.
func Param(name string) autowire.ParameterDescriptor {
	return autowire.ParameterDescriptor{Name: name}
}

// ObjectParam returns a parameter typed with a class or interface.
func ObjectParam(name, class string) autowire.ParameterDescriptor {
	return autowire.ParameterDescriptor{Name: name, Type: autowire.ClassType(class)}
}

// NullableParam returns a nullable object parameter.
func NullableParam(name, class string) autowire.ParameterDescriptor {
	p := ObjectParam(name, class)
	p.Nullable = true
	return p
}

// DefaultParam returns an object parameter with a default value.
func DefaultParam(name, class string, def any) autowire.ParameterDescriptor {
	p := ObjectParam(name, class)
	p.HasDefault = true
	p.Default = def
	return p
}
