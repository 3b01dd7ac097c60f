// Package crc holds the one-byte longitudinal checksum of telemetry frames:
// exclusive-or of every byte, starting from zero at frame start.
package crc

func XOR8(crc, data byte) byte { return crc ^ data }

func XOR8_n(crc byte, data []byte) byte {
	for _, b := range data {
		crc ^= b
	}
	return crc
}

func XOR8_s(crc byte, s string) byte {
	for i := 0; i < len(s); i++ {
		crc ^= s[i]
	}
	return crc
}
