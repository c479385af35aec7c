package xpt

import (
	"encoding/json"
	"fmt"
	"time"
)

// PreviewRowLimit is the fixed cap on rows materialized per dataset. The
// true observation count is always reported independently of it.
const PreviewRowLimit = 100

// VariableType is the storage type of a variable: IBM floating point or
// single-byte text.
type VariableType int

const (
	Numeric   VariableType = 1
	Character VariableType = 2
)

func (t VariableType) String() string {
	switch t {
	case Numeric:
		return "Numeric"
	case Character:
		return "Character"
	}
	return fmt.Sprintf("VariableType(%d)", int(t))
}

// MarshalJSON emits the type name, matching the payload the display layer
// consumes ("Numeric"/"Character").
func (t VariableType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Field describes one variable of a dataset, decoded from its NAMESTR
// record. Field order within a dataset is significant: it declares the row
// byte layout left to right and the display column order.
type Field struct {
	Name     string       `json:"name"`
	Label    string       `json:"label,omitempty"`
	Type     VariableType `json:"type"`
	Length   int          `json:"length"`
	Offset   int          `json:"offset"`
	Format   string       `json:"format,omitempty"`
	Decimals int          `json:"-"`

	// VarNum is the variable number the NAMESTR record declares. Conforming
	// writers emit NAMESTRs already in this order; it is surfaced for
	// callers but never used to reorder fields.
	VarNum int `json:"-"`
}

// Row maps a field name to its decoded value: float64 or nil for Numeric
// fields, string for Character fields.
type Row map[string]interface{}

// Dataset is one member of a transport file: its schema plus a preview of
// its rows. ObservationCount is the true total in the file; Rows holds at
// most PreviewRowLimit entries.
type Dataset struct {
	Name             string    `json:"name"`
	Label            string    `json:"label,omitempty"`
	Type             string    `json:"dataType,omitempty"`
	CreatedAt        time.Time `json:"createdDate"`
	ModifiedAt       time.Time `json:"modifiedDate"`
	ObservationCount int       `json:"observationCount"`
	Fields           []Field   `json:"fields"`
	Rows             []Row     `json:"rows"`
}

// RowLength returns the byte length of one observation: the sum of all
// field lengths.
func (d *Dataset) RowLength() int {
	n := 0
	for _, f := range d.Fields {
		n += f.Length
	}
	return n
}

// FieldByName returns the field with the given name, or nil.
func (d *Dataset) FieldByName(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// LibraryHeader holds the informational fields of the top-of-file LIBRARY
// header. They play no part in decoding; malformed content degrades to zero
// values instead of failing the parse.
type LibraryHeader struct {
	SASVersion string    `json:"sasVersion,omitempty"`
	OSName     string    `json:"osName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// XptFile is the fully decoded transport file: a flat, self-contained value
// the display layer can render without calling back into the decoder.
type XptFile struct {
	Path     string        `json:"path"`
	Library  LibraryHeader `json:"library"`
	Datasets []*Dataset    `json:"datasets"`
}

// NumDatasets returns the number of members in the file.
func (f *XptFile) NumDatasets() int {
	return len(f.Datasets)
}

// Dataset returns the member at the given index, or nil when out of range.
func (f *XptFile) Dataset(i int) *Dataset {
	if i < 0 || i >= len(f.Datasets) {
		return nil
	}
	return f.Datasets[i]
}

// DatasetByName returns the member with the given name, or nil.
func (f *XptFile) DatasetByName(name string) *Dataset {
	for _, ds := range f.Datasets {
		if ds.Name == name {
			return ds
		}
	}
	return nil
}
