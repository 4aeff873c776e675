package domain

import (
	"strings"

	"github.com/google/uuid"
)

const (
	uploadIDPrefix = "u_"
	reportIDPrefix = "r_"
)

// NewUploadID returns a fresh upload identifier of the form u_<16 hex>.
func NewUploadID() string { return uploadIDPrefix + randomHex16() }

// NewReportID returns a fresh report identifier of the form r_<16 hex>.
func NewReportID() string { return reportIDPrefix + randomHex16() }

// randomHex16 takes 64 bits from a random UUID. The version and variant nibbles sit past the cut.
func randomHex16() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
