package model

type InquiryType string

const (
	InquiryTypeGeneral      InquiryType = "general"
	InquiryTypeTourRequest  InquiryType = "tour-request"
	InquiryTypePriceInquiry InquiryType = "price-inquiry"
)

func (t InquiryType) Valid() bool {
	switch t {
	case InquiryTypeGeneral, InquiryTypeTourRequest, InquiryTypePriceInquiry:
		return true
	}
	return false
}

// InquiryRequest is the payload accepted by the inquiry API.
type InquiryRequest struct {
	PropertyID    string      `json:"propertyId"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Message       string      `json:"message"`
	InquiryType   InquiryType `json:"inquiryType"`
	PreferredDate string      `json:"preferredDate,omitempty"`
	PreferredTime string      `json:"preferredTime,omitempty"`
}
