package xpt

import (
	"bytes"
	"time"
)

// memberInfo is what the member scanner yields before any NAMESTR record is
// read: identity and provenance of the dataset plus the geometry of the
// NAMESTR block that follows.
type memberInfo struct {
	name        string
	label       string
	dsType      string
	createdAt   time.Time
	modifiedAt  time.Time
	namestrLen  int
	fieldCount  int
	headerStart int64
}

// Each member opens with four fixed records before its NAMESTR block:
//
//	MEMBER marker   (columns 75-78 carry the NAMESTR record length)
//	DSCRPTR marker
//	"SAS     " + dataset name + "SASDATA " + version + OS + created
//	modified timestamp + blanks + dataset label + dataset type
//
// then the NAMESTR marker record whose columns 55-58 carry the variable
// count. scanMember consumes all five and returns the collected metadata.
func scanMember(r *recordReader) (memberInfo, error) {
	info := memberInfo{headerStart: r.offset()}

	rec, err := r.readRecord()
	if err != nil {
		return info, err
	}
	if !bytes.HasPrefix(rec, memberMarker) {
		return info, parseErrorf(ErrInvalidMember, info.headerStart, "MEMBER marker not found")
	}
	info.namestrLen = namestrRecordLen
	if n, ok := parseRecordInt(rec[74:78]); ok && n > 0 {
		// 136 on VAX-written files, 140 everywhere else.
		info.namestrLen = n
	}

	start := r.offset()
	rec, err = r.readRecord()
	if err != nil {
		return info, err
	}
	if !bytes.HasPrefix(rec, dscrptrMarker) {
		return info, parseErrorf(ErrInvalidMember, start, "DSCRPTR marker not found")
	}

	first, err := r.readRecord()
	if err != nil {
		return info, err
	}
	second, err := r.readRecord()
	if err != nil {
		return info, err
	}
	info.name = trimField(first[8:16])
	info.createdAt = parseSASTime(first[64:80])
	info.modifiedAt = parseSASTime(second[0:16])
	info.label = trimField(second[32:72])
	info.dsType = trimField(second[72:80])

	start = r.offset()
	rec, err = r.readRecord()
	if err != nil {
		return info, err
	}
	if !bytes.HasPrefix(rec, namestrMarker) {
		return info, parseErrorf(ErrInvalidMember, start, "NAMESTR marker not found")
	}
	count, ok := parseRecordInt(rec[54:58])
	if !ok {
		return info, parseErrorf(ErrInvalidMember, start, "unreadable NAMESTR count %q", rec[54:58])
	}
	info.fieldCount = count

	return info, nil
}
