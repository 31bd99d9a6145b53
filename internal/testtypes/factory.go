package testtypes

import "github.com/sectrean/autowire"

// Service returns a class carrying a service directive with the given id.
// An empty id derives the id from the class name.
func Service(name, id string) autowire.ClassDescriptor {
	return autowire.ClassDescriptor{
		Name:    name,
		Service: &autowire.ServiceDirective{ID: id},
	}
}

// Constructor returns an injected constructor.
func Constructor(d autowire.Directives, params ...autowire.ParameterDescriptor) *autowire.MethodDescriptor {
	if d.Inject == nil {
		d.Inject = autowire.Inject()
	}
	return &autowire.MethodDescriptor{
		Name:       "__construct",
		Parameters: params,
		Directives: d,
	}
}

// Setter returns an injected method.
func Setter(name string, d autowire.Directives, params ...autowire.ParameterDescriptor) autowire.MethodDescriptor {
	if d.Inject == nil {
		d.Inject = autowire.Inject()
	}
	return autowire.MethodDescriptor{
		Name:       name,
		Parameters: params,
		Directives: d,
	}
}
