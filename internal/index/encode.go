package index

import "encoding/binary"

// key = pos(4) + 0x00 + url
func makePosKey(pos int, url string) []byte {
	buf := make([]byte, 4, 4+1+len(url))
	binary.BigEndian.PutUint32(buf, uint32(pos))
	buf = append(buf, 0x00)
	return append(buf, url...)
}

func urlFromPosKey(k []byte) string {
	if len(k) < 4+1 || k[4] != 0x00 {
		return ""
	}
	return string(k[5:])
}

func posFromPosKey(k []byte) int {
	if len(k) < 4 {
		return -1
	}
	return int(binary.BigEndian.Uint32(k[:4]))
}
