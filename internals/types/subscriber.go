package types

// AbstractSubscriber is an input driver: it produces the records to process.
type AbstractSubscriber interface {
	Init(config map[string]any) error
	Terminate()

	InternalInit(name string)
	Load() (Records, error)
}
