package uridecode

import (
	"github.com/indigo-web/reactor/internal/hexconv"
)

// Decode translates %XX escapes (two valid hex digits) into bytes and pluses into
// spaces, appending the result to buff. Malformed escapes are copied as they are,
// so decoding never fails. The returned slice may alias buff.
func Decode(src, buff []byte) []byte {
	for i := 0; i < len(src); i++ {
		switch char := src[i]; char {
		case '%':
			if i+2 < len(src) && hexconv.Is(src[i+1]) && hexconv.Is(src[i+2]) {
				buff = append(buff, hexconv.Byte(src[i+1], src[i+2]))
				i += 2
				continue
			}

			buff = append(buff, char)
		case '+':
			buff = append(buff, ' ')
		default:
			buff = append(buff, char)
		}
	}

	return buff
}

// DecodeString is Decode for strings.
func DecodeString(src string) string {
	return string(Decode([]byte(src), make([]byte, 0, len(src))))
}
