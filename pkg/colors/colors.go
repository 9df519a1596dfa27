// Package colors picks display colors for telemetry channels.
package colors

import (
	"hash/crc32"
	"image/color"
)

var colorMap = map[string]color.RGBA{
	"battery_voltage": {0x4D, 0xFF, 0x00, 0xFF},
	"battery_current": {0xFF, 0x91, 0x00, 0xFF},
	"speed":           {0x00, 0xC8, 0xFF, 0xFF},
	"power":           {0xCC, 0xFF, 0x00, 0xFF},
}

// GetColor returns the known color for a channel id, or a stable color
// derived from the id.
func GetColor(name string) color.RGBA {
	if c, ok := colorMap[name]; ok {
		return c
	}
	return hashToRGB(name)
}

func hashToRGB(input string) color.RGBA {
	hash := crc32.ChecksumIEEE([]byte(input))
	return color.RGBA{byte(hash >> 8), byte(hash >> 16), byte(hash), 255}
}
