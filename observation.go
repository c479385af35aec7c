package xpt

// Observation records follow a member's OBS header back to back with no
// per-row separators; the block as a whole is padded to an 80-byte multiple
// with blanks. Decoding slices the block into rowLength-sized rows, then
// each row into per-field ranges.

// decodeObservations turns a member's observation block into its true row
// count and the materialized preview rows. blockStart is the absolute
// offset of the block, used for error reporting.
func decodeObservations(fields []Field, block []byte, blockStart int64) (int, []Row, error) {
	// Whole trailing blank records are the padding a writer used to round
	// the section out (or benign trailer records before EOF); they hold no
	// observations.
	for len(block) >= recordSize && isFill(block[len(block)-recordSize:]) {
		block = block[:len(block)-recordSize]
	}

	rowLength := 0
	for _, f := range fields {
		rowLength += f.Length
	}
	if rowLength == 0 {
		// A dataset with no fields still reports zero observations, unless
		// actual data bytes are present with nowhere to put them.
		if !isFill(block) {
			return 0, nil, parseErrorf(ErrRowLayout, blockStart,
				"%d observation bytes but row length is zero", len(block))
		}
		return 0, []Row{}, nil
	}

	// Bytes past the last full row are trailing pad.
	count := len(block) / rowLength

	// The final record's padding is blanks, which are indistinguishable
	// from rows of all-blank data when rowLength divides into it. Trailing
	// all-blank rows that begin inside the final record are padding.
	lastRecord := 0
	if len(block) > 0 {
		lastRecord = (len(block) - 1) / recordSize * recordSize
	}
	for count > 0 {
		start := (count - 1) * rowLength
		if start < lastRecord || !isFill(block[start:start+rowLength]) {
			break
		}
		count--
	}

	materialized := count
	if materialized > PreviewRowLimit {
		materialized = PreviewRowLimit
	}

	rows := make([]Row, 0, materialized)
	for i := 0; i < materialized; i++ {
		rowBytes := block[i*rowLength : (i+1)*rowLength]
		row := make(Row, len(fields))
		for _, f := range fields {
			raw := rowBytes[f.Offset : f.Offset+f.Length]
			switch f.Type {
			case Character:
				// Empty after trimming is the empty string, not null.
				row[f.Name] = trimField(raw)
			case Numeric:
				if v, missing := decodeNumeric(raw); missing {
					row[f.Name] = nil
				} else {
					row[f.Name] = v
				}
			}
		}
		rows = append(rows, row)
	}
	return count, rows, nil
}
