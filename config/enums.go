package config

// Specification of requested output representation.
type OutputFmt string

const (
	OutputFmtJSON OutputFmt = "json"
	OutputFmtTree OutputFmt = "tree"
)

// Ext returns file name extension for the output representation. Validation
// accepts only known formats, anything else is treated as json.
func (o OutputFmt) Ext() string {
	if o == OutputFmtTree {
		return ".txt"
	}
	return ".json"
}
