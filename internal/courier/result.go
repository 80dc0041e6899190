package courier

import "github.com/parcelgate/courier/internal/domain"

// Result is the status envelope callers of the integration receive: either
// a created shipment or a structured error with the numeric code the
// validation layer assigned (400 for rejected input, 500/502 otherwise).
type Result struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	ErrorCode      int    `json:"error_code,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

// NewResult folds a NewPackage outcome into the envelope.
func NewResult(pkg *Package, err error) Result {
	if err != nil {
		return Result{
			Status:       "ERROR",
			ErrorCode:    domain.ErrorStatus(err),
			ErrorMessage: domain.ErrorMessage(err),
		}
	}
	return Result{
		Status:         "SUCCESS",
		TrackingNumber: pkg.TrackingNumber,
	}
}
