//go:build darwin

package platform

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// bulkBufSize is the attribute buffer passed to getattrlistbulk per call.
// The kernel fills as many records as fit and reports how many via the
// return value; ScanOne loops until it returns zero.
const bulkBufSize = 256 * 1024

// ScanOne lists dirPath's entries via getattrlistbulk, requesting the
// returned-attributes bitmap, name, object type, file data length, and
// file allocation size in a single attribute batch per syscall. Directory
// entries have their size and disk usage forced to zero: only leaf space
// counts as "usage" here, directory totals come from tree aggregation.
func ScanOne(dirPath string) (entries []Entry, errorCount int) {
	fd, err := unix.Open(dirPath, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return nil, 1
	}
	defer unix.Close(fd)

	alist := unix.Attrlist{
		Bitmapcount: unix.ATTR_BIT_MAP_COUNT,
		Commonattr:  unix.ATTR_CMN_RETURNED_ATTRS | unix.ATTR_CMN_NAME | unix.ATTR_CMN_OBJTYPE,
		Fileattr:    unix.ATTR_FILE_DATALENGTH | unix.ATTR_FILE_ALLOCSIZE,
	}

	buf := make([]byte, bulkBufSize)
	for {
		n, err := unix.Getattrlistbulk(fd, &alist, buf, 0)
		if err != nil {
			errorCount++
			break
		}
		if n <= 0 {
			break
		}

		cursor := buf
		for i := 0; i < n; i++ {
			entry, rest, ok := parseBulkRecord(cursor)
			if !ok {
				errorCount++
				break
			}
			cursor = rest
			if entry == nil {
				continue
			}
			entries = append(entries, *entry)
		}
	}
	return entries, errorCount
}

// parseBulkRecord decodes one variable-length getattrlistbulk record from
// the front of buf, returning the parsed entry (nil for "." and "..") and
// the remaining, unconsumed buffer.
//
// Record layout, matching the requested attribute order:
//
//	uint32           entry length (total bytes, including this field)
//	attribute_set_t  returned-attributes bitmap (5 x uint32: common, vol,
//	                 dir, file, fork)
//	attrreference_t  name reference (int32 offset from the reference's own
//	                 start, uint32 length including the trailing NUL)
//	fsobj_type_t     object type (uint32; VDIR for directories)
//	int64            file allocation size, present only if the file
//	                 attribute bit was set in the returned bitmap
//	int64            file data length, present only if the file attribute
//	                 bit was set in the returned bitmap
func parseBulkRecord(buf []byte) (entry *Entry, rest []byte, ok bool) {
	const attrSetSize = 5 * 4
	const attrRefSize = 4 + 4

	if len(buf) < 4 {
		return nil, nil, false
	}
	length := binary.LittleEndian.Uint32(buf[0:4])
	if length == 0 || int(length) > len(buf) {
		return nil, nil, false
	}
	record := buf[:length]
	cursor := record[4:]

	if len(cursor) < attrSetSize {
		return nil, nil, false
	}
	fileAttr := binary.LittleEndian.Uint32(cursor[12:16])
	cursor = cursor[attrSetSize:]

	if len(cursor) < attrRefSize {
		return nil, nil, false
	}
	nameRefStart := cursor
	nameOffset := int32(binary.LittleEndian.Uint32(cursor[0:4]))
	nameLen := binary.LittleEndian.Uint32(cursor[4:8])
	cursor = cursor[attrRefSize:]

	namePos := int(nameOffset)
	if namePos < 0 || namePos+int(nameLen) > len(nameRefStart) {
		return nil, nil, false
	}
	name := cString(nameRefStart[namePos : namePos+int(nameLen)])

	if len(cursor) < 4 {
		return nil, nil, false
	}
	objType := binary.LittleEndian.Uint32(cursor[0:4])
	cursor = cursor[4:]

	isDir := objType == unix.VDIR

	var allocSize, dataLength int64
	const attrFileAllocsize = 0x00000004
	const attrFileDatalength = 0x00000200
	if fileAttr&attrFileAllocsize != 0 {
		if len(cursor) < 8 {
			return nil, nil, false
		}
		allocSize = int64(binary.LittleEndian.Uint64(cursor[0:8]))
		cursor = cursor[8:]
	}
	if fileAttr&attrFileDatalength != 0 {
		if len(cursor) < 8 {
			return nil, nil, false
		}
		dataLength = int64(binary.LittleEndian.Uint64(cursor[0:8]))
	}

	if name == "." || name == ".." {
		return nil, record[length:], true
	}

	// VLNK in <sys/vnode.h>: symlinks are not followed and count as zero-size
	// files.
	const vlnk = 5
	size, disk := dataLength, allocSize
	if isDir || objType == vlnk {
		size, disk = 0, 0
	}
	return &Entry{Name: name, IsDir: isDir, SizeBytes: size, DiskUsage: disk}, record[length:], true
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
