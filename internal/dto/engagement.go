package dto

type CreateFavoriteRequest struct {
	DaycareID uint `json:"daycareId" validate:"required"`
}

type CreateApplicationRequest struct {
	DaycareID uint   `json:"daycareId" validate:"required"`
	ChildName string `json:"childName" validate:"required,min=1,max=100"`
	ChildAge  int    `json:"childAge" validate:"required,gte=1,lte=18"`
	StartDate string `json:"startDate" validate:"omitempty,max=20"`
	Notes     string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateApplicationStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=pending reviewed accepted declined"`
	ProviderNote string `json:"providerNote" validate:"omitempty,max=2000"`
}

type CreateContactLogRequest struct {
	DaycareID uint   `json:"daycareId" validate:"required"`
	Method    string `json:"method" validate:"required,oneof=phone email visit website"`
	Notes     string `json:"notes" validate:"omitempty,max=2000"`
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipientId" validate:"required"`
	Subject     string `json:"subject" validate:"omitempty,max=255"`
	Body        string `json:"body" validate:"required,min=1,max=5000"`
}
