package subscribers

import (
	"github.com/rs/zerolog"
	"os"
)

type Subscriber struct {
	Logger zerolog.Logger
}

func (s *Subscriber) InternalInit(name string) {
	s.Logger = zerolog.New(os.Stderr).
		With().Caller().Timestamp().
		Str("service", "subscriber").Str("serviceName", name).
		Logger()
}
func (s *Subscriber) InternalTerminate() {}
