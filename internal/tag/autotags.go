package tag

import (
	"fmt"
	"strconv"
)

// Autotags is the decoded "Serato Autotags" tag, holding the gain values
// computed during track analysis.
type Autotags struct {
	Version  Version
	AutoGain float64
	GainDB   float64
}

// ParseAutotags decodes a "Serato Autotags" tag body.
//
// The body is the version header followed by two NUL-terminated ASCII
// decimal strings: auto gain, then gain dB.
func ParseAutotags(data []byte) (*Autotags, error) {
	version, rest, err := readVersion(NameAutotags, data)
	if err != nil {
		return nil, err
	}

	autoGain, rest, err := readGainField("auto gain", rest)
	if err != nil {
		return nil, err
	}
	gainDB, _, err := readGainField("gain db", rest)
	if err != nil {
		return nil, err
	}

	return &Autotags{
		Version:  version,
		AutoGain: autoGain,
		GainDB:   gainDB,
	}, nil
}

func readGainField(what string, data []byte) (float64, []byte, error) {
	s, rest, err := cstring(data)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %s: %w", NameAutotags, what, err)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %s: invalid value %q", NameAutotags, what, s)
	}

	return v, rest, nil
}
