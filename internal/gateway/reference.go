package gateway

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
)

const referencePrefix = "WITHDRAW"

var referencePattern = regexp.MustCompile(`^WITHDRAW_(\d+)_.+$`)

// NewReference builds the outbound business reference binding a gateway
// transfer to a task. The random suffix keeps references unique per attempt.
func NewReference(taskID int64) string {
	return fmt.Sprintf("%s_%d_%s", referencePrefix, taskID, uuid.NewString())
}

// DecodeReference extracts the task id from a business reference. Anything
// not matching the expected shape is rejected, never parsed best-effort.
func DecodeReference(ref string) (int64, error) {
	m := referencePattern.FindStringSubmatch(ref)
	if m == nil {
		return 0, apperrors.ErrInvalidReference
	}

	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidReference
	}
	return id, nil
}
