package utils

const hexDigits = "0123456789ABCDEF"

// HexByte formats a byte as two uppercase hex digits (e.g., "0A").
func HexByte(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
}

// Hex4 formats a uint16 as four uppercase hex digits (e.g., "FFFF").
// Keeps fmt out of log call sites.
func Hex4(v uint16) string {
	return string([]byte{
		hexDigits[(v>>12)&0xF],
		hexDigits[(v>>8)&0xF],
		hexDigits[(v>>4)&0xF],
		hexDigits[v&0xF],
	})
}

// BytesToHex renders a payload as uppercase hex with no separators.
func BytesToHex(b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for _, x := range b {
		out = append(out, hexDigits[x>>4], hexDigits[x&0x0F])
	}
	return string(out)
}
