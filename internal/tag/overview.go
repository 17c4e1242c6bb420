package tag

// overviewRowSize is the width of one waveform summary row.
const overviewRowSize = 16

// Overview is the decoded "Serato Overview" tag: the track's waveform
// summary as a sequence of fixed-width rows.
type Overview struct {
	Version Version
	Data    [][]byte
}

// ParseOverview decodes a "Serato Overview" tag body. A trailing partial
// row, if any, is dropped.
func ParseOverview(data []byte) (*Overview, error) {
	version, rest, err := readVersion(NameOverview, data)
	if err != nil {
		return nil, err
	}

	o := &Overview{Version: version}
	for len(rest) >= overviewRowSize {
		row := make([]byte, overviewRowSize)
		copy(row, rest)
		o.Data = append(o.Data, row)
		rest = rest[overviewRowSize:]
	}

	return o, nil
}
