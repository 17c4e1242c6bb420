package tag

// Analysis is the decoded "Serato Analysis" tag.
//
// The tag body is nothing but the version of the analysis that produced
// the rest of the Serato metadata; only its presence matters downstream.
type Analysis struct {
	Version Version
}

// ParseAnalysis decodes a "Serato Analysis" tag body.
func ParseAnalysis(data []byte) (*Analysis, error) {
	version, _, err := readVersion(NameAnalysis, data)
	if err != nil {
		return nil, err
	}
	return &Analysis{Version: version}, nil
}
