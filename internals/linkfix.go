package internals

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/quix-labs/linkfix/internals/links"
	"github.com/quix-labs/linkfix/internals/types"
	"github.com/quix-labs/linkfix/publishers/jsonfile"
	jsonsubscriber "github.com/quix-labs/linkfix/subscribers/jsonfile"
	"github.com/rs/zerolog"
)

type LinkFix struct {
	config       *Config
	subscriber   types.AbstractSubscriber
	publisher    types.AbstractPublisher
	transformers types.Transformers
	normalizer   *links.Normalizer

	Logger zerolog.Logger
}

func (linkFix *LinkFix) Init(config *Config) error {
	config.SetDefaults()
	linkFix.config = config

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %s", config.LogLevel)
	}
	zerolog.SetGlobalLevel(level)
	linkFix.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "linkfix").Logger()

	err = linkFix.loadSubscriber()
	if err != nil {
		return err
	}
	err = linkFix.loadPublisher()
	if err != nil {
		return err
	}
	linkFix.loadTransformers()
	return nil
}

// Run loads, validates, normalizes and saves every record. Nothing is written
// unless every step before the save succeeded.
func (linkFix *LinkFix) Run() error {
	records, err := linkFix.subscriber.Load()
	if err != nil {
		return err
	}

	err = validation.Validate(records)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrShape, err)
	}

	err = linkFix.transformers.Apply(records)
	if err != nil {
		return err
	}

	err = linkFix.publisher.Publish(records)
	if err != nil {
		return err
	}

	linkFix.Logger.Info().
		Int("records", len(records)).
		Int("rewritten", linkFix.normalizer.Rewritten()).
		Msg("Links normalized")
	return nil
}

func (linkFix *LinkFix) OutputPath() string {
	return linkFix.config.Output
}

func (linkFix *LinkFix) Terminate() {
	if linkFix.subscriber != nil {
		linkFix.subscriber.Terminate()
	}
	if linkFix.publisher != nil {
		linkFix.publisher.Terminate()
	}
}

// -----------------INTERNALS----------------------------------------------

func (linkFix *LinkFix) loadSubscriber() error {
	subscriber := &jsonsubscriber.Subscriber{}
	subscriber.InternalInit("input")
	err := subscriber.Init(map[string]any{"path": linkFix.config.Input})
	if err != nil {
		return err
	}
	linkFix.subscriber = subscriber
	return nil
}

func (linkFix *LinkFix) loadPublisher() error {
	publisher := &jsonfile.Publisher{}
	publisher.InternalInit("output")
	err := publisher.Init(map[string]any{"path": linkFix.config.Output})
	if err != nil {
		return err
	}
	linkFix.publisher = publisher
	return nil
}

func (linkFix *LinkFix) loadTransformers() {
	linkFix.normalizer = &links.Normalizer{Field: types.LinkField}
	linkFix.normalizer.InternalInit("link")
	linkFix.transformers = types.Transformers{linkFix.normalizer}
}
