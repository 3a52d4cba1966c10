package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Format describes PCM sample data
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

var errNotWAV = errors.New("not a RIFF/WAVE file")

// parseWAV parses a WAV file and returns the format and audio data.
// Only 16 bit PCM is accepted since that is what the device is opened with.
func parseWAV(data []byte) (Format, []byte, error) {
	reader := bytes.NewReader(data)

	var header [12]byte
	if _, err := io.ReadFull(reader, header[:]); err != nil {
		return Format{}, nil, fmt.Errorf("reading wav header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return Format{}, nil, errNotWAV
	}

	var format Format
	var haveFmt bool

	// Read chunks
	for {
		var chunkID [4]byte
		if _, err := io.ReadFull(reader, chunkID[:]); err != nil {
			return Format{}, nil, fmt.Errorf("no data chunk: %w", err)
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return Format{}, nil, err
		}

		switch string(chunkID[:]) {
		case "fmt ":
			var fmtChunk struct {
				AudioFormat   uint16
				Channels      uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(reader, binary.LittleEndian, &fmtChunk); err != nil {
				return Format{}, nil, fmt.Errorf("reading fmt chunk: %w", err)
			}
			format = Format{
				SampleRate: int(fmtChunk.SampleRate),
				Channels:   int(fmtChunk.Channels),
				BitDepth:   int(fmtChunk.BitsPerSample),
			}
			haveFmt = true

			// Skip any extra format bytes
			if extra := int64(chunkSize) - 16; extra > 0 {
				reader.Seek(extra, io.SeekCurrent)
			}

		case "data":
			if !haveFmt {
				return Format{}, nil, errors.New("data chunk before fmt chunk")
			}
			if format.BitDepth != 16 {
				return Format{}, nil, fmt.Errorf("unsupported bit depth %d", format.BitDepth)
			}
			if format.Channels < 1 || format.Channels > 2 {
				return Format{}, nil, fmt.Errorf("unsupported channel count %d", format.Channels)
			}
			size := min(int64(chunkSize), int64(reader.Len()))
			audioData := make([]byte, size)
			if _, err := io.ReadFull(reader, audioData); err != nil {
				return Format{}, nil, err
			}
			return format, audioData, nil

		default:
			// Skip unknown chunk, padded to an even size
			reader.Seek(int64(chunkSize+chunkSize%2), io.SeekCurrent)
		}
	}
}
