package xpt

import (
	"encoding/binary"
	"fmt"
)

// NAMESTR records are 140 bytes (136 on VAX), written back to back and
// padded as a block to an 80-byte multiple. All integers are big-endian.
// Fixed offsets within a record:
//
//	0  ntype   int16   1=numeric, 2=character
//	4  nlng    int16   variable length in the observation
//	6  nvar0   int16   variable number
//	8  nname   [8]byte
//	16 nlabel  [40]byte
//	56 nform   [8]byte format name
//	64 nfl     int16   format width
//	66 nfd     int16   format decimals
//	84 npos    int32   byte offset of the value within a row
//
// The remaining bytes hold informat and alignment fields with no bearing
// on decoding.
const namestrRecordLen = 140

const (
	maxNumericLength   = 8
	maxCharacterLength = 200
)

// parseNamestr decodes one NAMESTR record into a Field. recOffset is the
// absolute byte offset of the record, used only for error reporting.
func parseNamestr(rec []byte, index int, recOffset int64) (Field, error) {
	var f Field

	typ := int(int16(binary.BigEndian.Uint16(rec[0:2])))
	length := int(int16(binary.BigEndian.Uint16(rec[4:6])))
	f.VarNum = int(int16(binary.BigEndian.Uint16(rec[6:8])))
	f.Name = trimField(rec[8:16])
	f.Label = trimField(rec[16:56])
	f.Format = trimField(rec[56:64])
	f.Decimals = int(int16(binary.BigEndian.Uint16(rec[66:68])))
	f.Offset = int(int32(binary.BigEndian.Uint32(rec[84:88])))

	switch VariableType(typ) {
	case Numeric:
		f.Type = Numeric
		if length < 1 || length > maxNumericLength {
			return f, parseErrorf(ErrInvalidFieldDescriptor, recOffset,
				"numeric variable %q has length %d (want 1-%d)", f.Name, length, maxNumericLength)
		}
	case Character:
		f.Type = Character
		if length < 1 || length > maxCharacterLength {
			return f, parseErrorf(ErrInvalidFieldDescriptor, recOffset,
				"character variable %q has length %d (want 1-%d)", f.Name, length, maxCharacterLength)
		}
	default:
		return f, parseErrorf(ErrInvalidFieldDescriptor, recOffset,
			"variable %q has unknown type code %d", f.Name, typ)
	}
	f.Length = length

	if f.Name == "" {
		// Some writers leave nname blank; fall back to a positional name.
		f.Name = fmt.Sprintf("VAR%d", index+1)
	}
	return f, nil
}

// parseNamestrBlock reads the whole NAMESTR block for a member: count
// records of info.namestrLen bytes, then the blank padding that rounds the
// block up to a record multiple.
func parseNamestrBlock(r *recordReader, info memberInfo) ([]Field, error) {
	raw := info.fieldCount * info.namestrLen
	blockStart := r.offset()
	block, err := r.take(raw)
	if err != nil {
		return nil, err
	}
	if pad := (recordSize - raw%recordSize) % recordSize; pad > 0 {
		r.skip(pad)
	}

	fields := make([]Field, 0, info.fieldCount)
	for i := 0; i < info.fieldCount; i++ {
		start := i * info.namestrLen
		f, err := parseNamestr(block[start:start+info.namestrLen], i, blockStart+int64(start))
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if err := resolveLayout(fields, blockStart); err != nil {
		return nil, err
	}
	return fields, nil
}

// resolveLayout checks the declared npos values against the row layout the
// declared lengths imply. A conforming writer emits exactly the running sum;
// all-zero npos values (some writers leave them blank) fall back to it. Any
// other disagreement is inconsistent row geometry and fatal: slicing rows by
// either interpretation would misrepresent half the values.
func resolveLayout(fields []Field, blockStart int64) error {
	declared, zeroed := true, true
	pos := 0
	for _, f := range fields {
		if f.Offset != pos {
			declared = false
		}
		if f.Offset != 0 {
			zeroed = false
		}
		pos += f.Length
	}
	if declared {
		return nil
	}
	if !zeroed {
		return parseErrorf(ErrRowLayout, blockStart,
			"NAMESTR offsets disagree with declared field lengths")
	}
	pos = 0
	for i := range fields {
		fields[i].Offset = pos
		pos += fields[i].Length
	}
	return nil
}
