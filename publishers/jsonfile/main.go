package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quix-labs/linkfix/internals/types"
	"github.com/quix-labs/linkfix/internals/utils"
	"github.com/quix-labs/linkfix/publishers"
)

const defaultIndent = "  "

// Publisher writes records as an indented JSON array.
// The document is written to a temporary file next to Path and renamed over
// it, so Path never holds a partial document.
type Publisher struct {
	publishers.Publisher
	Path   string
	Indent string
}

func (p *Publisher) Init(config map[string]any) error {
	err := utils.ParseMapKey(config, "path", &p.Path)
	if err != nil {
		return err
	}
	if p.Path == "" {
		return errors.New("jsonfile publisher: empty path")
	}
	return utils.ParseMapKeyOr(config, "indent", defaultIndent, &p.Indent)
}

func (p *Publisher) Publish(records types.Records) error {
	if records == nil {
		records = types.Records{}
	}
	content, err := Encode(records, p.Indent)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrOutput, err)
	}
	if err = p.writeAtomic(content); err != nil {
		return fmt.Errorf("%w: %w", types.ErrOutput, err)
	}
	p.Logger.Debug().Str("path", p.Path).Int("records", len(records)).Msg("Records saved")
	return nil
}

func (p *Publisher) Terminate() {}

// Encode renders records as indented JSON without HTML escaping and without a
// trailing newline.
func Encode(records types.Records, indent string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// writeAtomic replaces the file Path points to. A symlinked Path keeps its
// link and the target is replaced; an existing file keeps its mode.
func (p *Publisher) writeAtomic(content []byte) error {
	target := p.Path
	if resolved, err := filepath.EvalSymlinks(p.Path); err == nil {
		target = resolved
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, target)
}
