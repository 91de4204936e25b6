package storage

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/sky-flux/deck"
)

func encodeJSON(records []deck.Record) ([]byte, error) {
	if err := deck.Validate(records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []deck.Record{}
	}
	return json.MarshalIndent(records, "", "  ")
}

func decodeJSON(data []byte) ([]deck.Record, error) {
	records := []deck.Record{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if records == nil {
		records = []deck.Record{}
	}
	return records, nil
}

func encodeYAML(records []deck.Record) ([]byte, error) {
	if err := deck.Validate(records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []deck.Record{}
	}
	return yaml.Marshal(records)
}

func decodeYAML(data []byte) ([]deck.Record, error) {
	records := []deck.Record{}
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if records == nil {
		records = []deck.Record{}
	}
	return records, nil
}

func cloneRecords(records []deck.Record) []deck.Record {
	out := make([]deck.Record, len(records))
	copy(out, records)
	return out
}
