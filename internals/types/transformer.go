package types

// AbstractTransformer rewrites a single record in place.
type AbstractTransformer interface {
	InternalInit(name string)
	Apply(record *Record) error
}

type Transformers []AbstractTransformer

func (transformers Transformers) Apply(records Records) error {
	for _, record := range records {
		for _, transformer := range transformers {
			if err := transformer.Apply(record); err != nil {
				return err
			}
		}
	}
	return nil
}
