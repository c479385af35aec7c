package xpt

import "bytes"

// The LIBRARY header occupies the first three records of the file:
//
//	record 0: the LIBRARY marker record
//	record 1: "SAS     SAS     SASLIB  " + version + OS + blanks + created
//	record 2: modified timestamp + blanks
//
// Only the marker is load-bearing; the rest is provenance extracted
// best-effort by fixed byte offsets.
func parseLibraryHeader(r *recordReader) (LibraryHeader, error) {
	var lib LibraryHeader

	start := r.offset()
	rec, err := r.readRecord()
	if err != nil {
		return lib, err
	}
	if !bytes.HasPrefix(rec, libraryMarker) {
		return lib, parseErrorf(ErrInvalidHeader, start, "LIBRARY marker not found")
	}

	first, err := r.readRecord()
	if err != nil {
		return lib, err
	}
	second, err := r.readRecord()
	if err != nil {
		return lib, err
	}

	lib.SASVersion = trimField(first[24:32])
	lib.OSName = trimField(first[32:40])
	lib.CreatedAt = parseSASTime(first[64:80])
	lib.ModifiedAt = parseSASTime(second[0:16])
	return lib, nil
}
