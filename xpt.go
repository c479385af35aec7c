// Package xpt decodes SAS XPORT (transport) files: the datasets they
// contain, each dataset's variable schema, and a capped preview of its
// observation rows. The decoder is a pure function over an in-memory byte
// buffer; it performs no I/O of its own beyond the Open* conveniences and
// is safe to run concurrently on independent buffers.
package xpt

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Open opens and decodes a transport file from the given file path. The
// file handle is released before Open returns, on success and failure both.
func Open(file string) (*XptFile, error) {
	fi, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fi.Close()

	return OpenStream(fi, file)
}

// OpenStream decodes a transport file from any io.Reader (e.g. network
// stream, archive entry). The format is decoded from a single in-memory
// pass, so the entire input is buffered first; not recommended for files
// larger than available memory. path is used for labeling only and may be
// empty.
func OpenStream(r io.Reader, path string) (*XptFile, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}

	return Parse(buf.Bytes(), path)
}

// Parse decodes a complete transport file from raw bytes. It validates the
// LIBRARY header, then decodes members until the stream is exhausted. Any
// framing fault is fatal to the whole parse: a partial result would
// misrepresent the file's contents. The returned value does not retain
// data, and parsing the same bytes twice yields structurally identical
// results.
func Parse(data []byte, path string) (*XptFile, error) {
	r := &recordReader{data: data}

	lib, err := parseLibraryHeader(r)
	if err != nil {
		return nil, err
	}

	file := &XptFile{
		Path:     path,
		Library:  lib,
		Datasets: make([]*Dataset, 0),
	}

	for r.bytesRemaining() >= recordSize {
		rec, _ := r.peekRecord()
		if !bytes.HasPrefix(rec, memberMarker) {
			// Real-world files occasionally end with a short run of blank
			// records; that is benign padding, not corrupt framing.
			if isFill(r.data[r.pos:]) {
				break
			}
			return nil, parseErrorf(ErrInvalidMember, r.offset(), "expected MEMBER marker")
		}

		ds, err := parseMemberSection(r, path)
		if err != nil {
			return nil, err
		}
		file.Datasets = append(file.Datasets, ds)
	}

	return file, nil
}

// parseMemberSection decodes one complete member: framing, NAMESTR block,
// and observation block, assembled into a Dataset.
func parseMemberSection(r *recordReader, path string) (*Dataset, error) {
	info, err := scanMember(r)
	if err != nil {
		return nil, err
	}

	fields, err := parseNamestrBlock(r, info)
	if err != nil {
		return nil, err
	}

	// The OBS header record announces observation data. A member written
	// with zero observations may end right here, at EOF or at the next
	// member.
	var block []byte
	blockStart := r.offset()
	if rec, ok := r.peekRecord(); ok && bytes.HasPrefix(rec, obsMarker) {
		r.skip(recordSize)
		blockStart = r.offset()
		end := r.nextMemberBoundary()
		block = r.data[r.pos:end]
		r.pos = end
	} else if ok && !bytes.HasPrefix(rec, memberMarker) && !isFill(rec) {
		return nil, parseErrorf(ErrInvalidMember, blockStart, "expected OBS marker")
	}

	count, rows, err := decodeObservations(fields, block, blockStart)
	if err != nil {
		return nil, err
	}

	name := info.name
	if name == "" {
		// Fall back to the file stem the way the viewer titles unnamed
		// datasets.
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if name == "" || name == "." {
			name = "DATASET"
		}
	}

	return &Dataset{
		Name:             name,
		Label:            info.label,
		Type:             info.dsType,
		CreatedAt:        info.createdAt,
		ModifiedAt:       info.modifiedAt,
		ObservationCount: count,
		Fields:           fields,
		Rows:             rows,
	}, nil
}
