package core

// Logger reports application events. Args may carry anything worth attaching
// to the report; implementations may inspect them for an identity.Identity to
// attach the acting person.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
