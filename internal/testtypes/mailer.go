package testtypes

import "github.com/sectrean/autowire"

// MailerBatch returns a small, consistent batch of classes:
//
//   - a file logger implementing the logger interface,
//   - an SMTP transport taking its host from a parameter,
//   - a mailer wired by type through the interfaces, with a cache setter
//     that tolerates a missing cache and a literal retry count,
//   - a newsletter extending the mailer with a by-name property.
//
// The batch needs the parameter "mailer.host" and the declarations of [Types].
func MailerBatch() []autowire.ClassDescriptor {
	logger := Service(FileLogger, "logger")
	logger.Interfaces = []string{LoggerInterface}

	transport := Service(SmtpTransport, "")
	transport.Interfaces = []string{TransportInterface}
	transport.Constructor = Constructor(
		autowire.Directives{Inject: autowire.InjectNamed(map[string]any{"host": "%mailer.host%"})},
		Param("host"),
	)

	mailer := Service(Mailer, "mailer")
	mailer.Constructor = Constructor(autowire.Directives{},
		ObjectParam("transport", TransportInterface),
		ObjectParam("logger", LoggerInterface),
	)
	mailer.Methods = []autowire.MethodDescriptor{
		Setter("setCache", autowire.Directives{Inject: autowire.Inject("@cache")},
			DefaultParam("cache", Cache, nil),
		),
		Setter("setRetries", autowire.Directives{Inject: autowire.Inject("3")},
			autowire.ParameterDescriptor{Name: "retries", Type: autowire.ScalarType("int")},
		),
	}

	newsletter := Service(Newsletter, "")
	newsletter.Base = Mailer
	newsletter.Properties = []autowire.PropertyDescriptor{
		{Name: "loggerService"},
		{Name: "mailerHostParameter"},
		{Name: "title"},
	}

	return []autowire.ClassDescriptor{logger, transport, mailer, newsletter}
}
