package workflow

import (
	"io"
	"strings"

	"github.com/jtheoden/papuenvios-sub001/pkg/errors"
)

// MaxProofSize is the upload ceiling for proof images
const MaxProofSize int64 = 5 << 20 // 5 MB

// ProofFile is an image supplied atomically with a delivery-confirmation
// action, validated locally before any upload attempt
type ProofFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Payload carries the inputs an action may require. ProofURL is an
// already-uploaded reference; ProofFile is uploaded by the controller after
// local validation.
type Payload struct {
	Reason       string
	TrackingInfo string
	ProofURL     string
	ProofFile    *ProofFile
}

// CheckProofFile validates type and size before any network call
func CheckProofFile(f *ProofFile) error {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return &errors.ErrInvalidFileType{ContentType: f.ContentType}
	}
	if f.Size > MaxProofSize {
		return &errors.ErrFileTooLarge{Size: f.Size, Limit: MaxProofSize}
	}
	return nil
}

// CheckPreconditions runs the guard checks for a transition rule against
// the payload and the entity's stored proof reference. It performs no
// writes; failures are typed and recoverable.
func CheckPreconditions(rule Rule, p Payload, storedProofURL *string) error {
	if rule.NeedsReason && strings.TrimSpace(p.Reason) == "" {
		return &errors.ErrMissingReason{Action: string(rule.Action)}
	}
	if rule.NeedsTracking && strings.TrimSpace(p.TrackingInfo) == "" {
		return &errors.ErrValidation{
			Message: "tracking info is required to dispatch",
			Fields:  map[string]string{"tracking_info": "required"},
		}
	}
	if p.ProofFile != nil {
		if err := CheckProofFile(p.ProofFile); err != nil {
			return err
		}
	}
	if rule.NeedsProof {
		hasStored := storedProofURL != nil && *storedProofURL != ""
		if p.ProofFile == nil && strings.TrimSpace(p.ProofURL) == "" && !hasStored {
			return &errors.ErrMissingProof{}
		}
	}
	return nil
}
