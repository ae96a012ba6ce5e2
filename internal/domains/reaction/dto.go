package reaction

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ReactRequest - POST /public/items/:itemId/reactions
type ReactRequest struct {
	Type Kind `json:"type"`
}

func (r ReactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.In(Kinds...).Error(ErrInvalidKind.Error()),
		),
	)
}

// ReactResponse: Recorded=false nghĩa là khách này đã react trước đó,
// counters không đổi.
type ReactResponse struct {
	ItemID   uuid.UUID `json:"item_id"`
	Type     Kind      `json:"type"`
	Recorded bool      `json:"recorded"`
	Counts
}
