package domain

import "time"

// AdminRequestType enumerates the user-submitted request categories.
type AdminRequestType string

const (
	RequestComplaint AdminRequestType = "complaint"
	RequestContact   AdminRequestType = "contact"
	RequestRecipe    AdminRequestType = "recipe"
	RequestResults   AdminRequestType = "results"
)

// AdminRequestStatus tracks the operator workflow for a request.
type AdminRequestStatus string

const (
	RequestPending    AdminRequestStatus = "pending"
	RequestInProgress AdminRequestStatus = "in_progress"
	RequestResolved   AdminRequestStatus = "resolved"
)

// AdminRequest is a user-submitted request handled by an operator.
type AdminRequest struct {
	ID     int64
	UserID int64

	Type    AdminRequestType
	Title   string
	Message string

	// Recipe submissions.
	RecipeComposition string
	RecipePhotoFileID string
	RecipeDescription string

	// Before/after results submissions.
	ResultsBeforePhotoID string
	ResultsAfterPhotoID  string
	ResultsAge           *int
	ResultsHeight        *float64
	ResultsWeightBefore  *float64
	ResultsWeightAfter   *float64
	ResultsComment       string

	Status        AdminRequestStatus
	AdminResponse string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UsageStats is the anonymized aggregate view exposed to operators.
type UsageStats struct {
	AvgMorningEnergy float64
	AvgCalories      float64
	AvgProtein       float64
	AvgSteps         float64
	TotalUsers       int
	TotalRecords     int
}
