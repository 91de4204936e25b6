package deck

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/exercises.json
var defaultRecordsJSON []byte

var defaultRecords = mustDecodeDefaults(defaultRecordsJSON)

func mustDecodeDefaults(data []byte) []Record {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		panic(fmt.Sprintf("deck: embedded default records: %v", err))
	}
	if err := Validate(records); err != nil {
		panic(fmt.Sprintf("deck: embedded default records: %v", err))
	}
	return records
}

// DefaultRecords returns a fresh copy of the built-in exercise collection:
// the 34 classical Pilates mat exercises, titled and described in English
// and French. It is the collection a new store is seeded with.
func DefaultRecords() []Record {
	out := make([]Record, len(defaultRecords))
	copy(out, defaultRecords)
	return out
}
