package jsonfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/quix-labs/linkfix/internals/types"
	"github.com/quix-labs/linkfix/internals/utils"
	"github.com/quix-labs/linkfix/subscribers"
)

// Subscriber loads every record of a JSON array file at once.
type Subscriber struct {
	subscribers.Subscriber
	Path string
}

func (s *Subscriber) Init(config map[string]any) error {
	err := utils.ParseMapKey(config, "path", &s.Path)
	if err != nil {
		return err
	}
	if s.Path == "" {
		return errors.New("jsonfile subscriber: empty path")
	}
	return nil
}

func (s *Subscriber) Load() (types.Records, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInputAccess, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInputAccess, err)
	}

	records, err := types.ParseRecords(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	s.Logger.Debug().Str("path", s.Path).Int("records", len(records)).Msg("Records loaded")
	return records, nil
}

func (s *Subscriber) Terminate() {}
