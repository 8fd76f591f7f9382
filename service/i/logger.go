package i

// Logger is a leveled logger taking preformatted messages.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
