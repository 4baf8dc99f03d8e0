package footage

import "fmt"

// FourCCString unpacks a fourcc code into its 4-character codec tag,
// e.g. 1196444237 -> "MJPG". Returns "" for zero or negative codes, which
// is what image-backed sources report.
func FourCCString(code int64) string {
	if code <= 0 {
		return ""
	}
	b := [4]byte{
		byte(code),
		byte(code >> 8),
		byte(code >> 16),
		byte(code >> 24),
	}
	return string(b[:])
}

// ParseFourCC packs a 4-character codec tag into its fourcc code,
// e.g. "MJPG" -> 1196444237.
func ParseFourCC(tag string) (int64, error) {
	if len(tag) != 4 {
		return 0, fmt.Errorf("footage: fourcc tag must be exactly 4 characters, got %q", tag)
	}
	return int64(tag[0]) | int64(tag[1])<<8 | int64(tag[2])<<16 | int64(tag[3])<<24, nil
}
