package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeWAV serializes a PCM16 waveform into a complete WAV buffer.
func EncodeWAV(w Waveform) []byte {
	const bitsPerSample = 16
	dataSize := len(w.Data)
	byteRate := w.SampleRate * w.Channels * bitsPerSample / 8
	blockAlign := w.Channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))           // fmt chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))            // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(w.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(w.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(w.Data)

	return buf.Bytes()
}

// DecodeWAV parses a WAV buffer into a waveform. Only uncompressed PCM16
// is accepted; anything else must go through the transcoder first.
func DecodeWAV(b []byte) (Waveform, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return Waveform{}, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		w       Waveform
		haveFmt bool
	)

	// Walk the chunk list; fmt must precede data.
	off := 12
	for off+8 <= len(b) {
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		body := off + 8
		if body+size > len(b) {
			// Tolerate a truncated final data chunk from streaming writers.
			if id != "data" {
				return Waveform{}, fmt.Errorf("truncated %q chunk", id)
			}
			size = len(b) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Waveform{}, fmt.Errorf("short fmt chunk (%d bytes)", size)
			}
			format := binary.LittleEndian.Uint16(b[body : body+2])
			if format != 1 {
				return Waveform{}, fmt.Errorf("unsupported WAV format code %d (want PCM)", format)
			}
			bits := binary.LittleEndian.Uint16(b[body+14 : body+16])
			if bits != 16 {
				return Waveform{}, fmt.Errorf("unsupported sample width %d bits (want 16)", bits)
			}
			w.Channels = int(binary.LittleEndian.Uint16(b[body+2 : body+4]))
			w.SampleRate = int(binary.LittleEndian.Uint32(b[body+4 : body+8]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return Waveform{}, fmt.Errorf("data chunk before fmt chunk")
			}
			w.Data = b[body : body+size]
			return w, nil
		}

		// Chunks are word-aligned.
		off = body + size
		if size%2 == 1 {
			off++
		}
	}

	return Waveform{}, fmt.Errorf("no data chunk found")
}
