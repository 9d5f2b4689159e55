package links

import (
	"os"
	"regexp"

	"github.com/quix-labs/linkfix/internals/types"
	"github.com/rs/zerolog"
)

const AnalysisSuffix = "/analysis?attemptNo=1"

// The id class is Unicode-aware: letters, numbers and underscore.
var testPattern = regexp.MustCompile(`(https://testbook\.com/TS-ssc-cgl/tests/[\p{L}\p{N}_]+)`)

// Normalize rewrites the first test URL found in link into its analysis form.
// A link without a test URL is returned unchanged.
func Normalize(link string) string {
	match := testPattern.FindStringSubmatch(link)
	if match == nil {
		return link
	}
	return match[1] + AnalysisSuffix
}

// Normalizer applies Normalize to one string field of each record.
type Normalizer struct {
	Field  string
	Logger zerolog.Logger

	rewritten int
}

func (n *Normalizer) InternalInit(name string) {
	n.Logger = zerolog.New(os.Stderr).
		With().Caller().Timestamp().
		Str("service", "transformer").Str("serviceName", name).
		Logger()
	if n.Field == "" {
		n.Field = types.LinkField
	}
}

func (n *Normalizer) Apply(record *types.Record) error {
	link, err := record.GetString(n.Field)
	if err != nil {
		return err
	}
	normalized := Normalize(link)
	if normalized == link {
		return nil
	}
	n.rewritten++
	n.Logger.Trace().Str("from", link).Str("to", normalized).Msg("Link rewritten")
	return record.SetString(n.Field, normalized)
}

// Rewritten reports how many fields Apply has changed so far.
func (n *Normalizer) Rewritten() int {
	return n.rewritten
}
