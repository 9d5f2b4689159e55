package types

// AbstractPublisher is an output driver: it persists processed records.
type AbstractPublisher interface {
	Init(config map[string]any) error
	Terminate()

	InternalInit(name string)
	Publish(records Records) error
}
