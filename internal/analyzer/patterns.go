package analyzer

import "regexp"

// Contact patterns shared by the structure scorer and the ATS simulator.
// The phone pattern targets Malaysian mobile numbers (01x-xxxxxxx, optional
// +60 prefix).
var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	phonePattern = regexp.MustCompile(`(\+?6?01)[0-46-9]-*[0-9]{7,8}`)
)
